// Package templates holds the hand-written templ components for the quote
// studio UI. Components are built directly on templ.ComponentFunc; every
// dynamic value goes through templ.EscapeString before it reaches the page.
package templates

import "quotestudio/services"

// ActiveProject identifies the project selected in the header switcher.
type ActiveProject struct {
	ID   string
	Name string
}

// ProjectSelectorItem is one entry in the header project dropdown.
type ProjectSelectorItem struct {
	ID       string
	Name     string
	Client   string
	IsActive bool
}

// HeaderData feeds the top bar on every page.
type HeaderData struct {
	ActiveProject *ActiveProject
	Projects      []ProjectSelectorItem
}

// ProjectListItem is one card on the project list page.
type ProjectListItem struct {
	ID          string
	Name        string
	ClientName  string
	ProjectType string
	RoomCount   int
	ItemCount   int
	GrandTotal  string
	CreatedDate string
}

// ProjectListData feeds the project list page.
type ProjectListData struct {
	Items      []ProjectListItem
	TotalCount int
}

// ProjectFormData feeds both the create and edit project forms.
type ProjectFormData struct {
	ID              string
	Name            string
	ClientName      string
	SiteAddress     string
	ContactInfo     string
	ProjectType     string
	ProjectTypes    []string
	GSTPercent      float64
	DiscountPercent float64
	IsEdit          bool
}

// ItemRow is one line item row in the project view.
type ItemRow struct {
	ID       string
	ItemName string
	UOM      string
	Length   string
	Height   string
	Quantity string
	Rate     string
	Material string
	AddOns   string
	Amount   string
}

// RoomSection groups a room's items with its running total.
type RoomSection struct {
	ID    string
	Name  string
	Total string
	Items []ItemRow
}

// TotalsBlock is the quote summary under the room sections.
type TotalsBlock struct {
	Subtotal        string
	GSTPercent      float64
	TaxAmount       string
	DiscountPercent float64
	DiscountAmount  string
	GrandTotal      string
	AmountInWords   string
}

// UOMBreakdownRow is one row of the per-UOM summary table.
type UOMBreakdownRow struct {
	UOM    string
	Count  int
	Amount string
}

// RateCardOption is a catalog entry offered in the add-item picker.
type RateCardOption struct {
	ID       string
	Category string
	Item     string
	UOM      string
	Rate     string
}

// RoomTemplateOption is a saved room template offered in the apply picker.
type RoomTemplateOption struct {
	ID        string
	Name      string
	ItemCount int
}

// ProjectViewData feeds the single project page.
type ProjectViewData struct {
	ID              string
	Name            string
	ClientName      string
	SiteAddress     string
	ContactInfo     string
	ProjectType     string
	GSTPercent      float64
	DiscountPercent float64
	Rooms           []RoomSection
	Totals          TotalsBlock
	UOMBreakdown    []UOMBreakdownRow
	Stats           services.ProjectStats
	UOMOptions      []string
	GSTOptions      []int
	RateCard        []RateCardOption
	RoomTemplates   []RoomTemplateOption
}

// RateCardRow is one editable row of the rate card page.
type RateCardRow struct {
	ID              string
	Category        string
	Item            string
	UOM             string
	Rate            string
	MaterialOptions string
	MaterialPrices  string
	AddOns          string
	AddonPrices     string
}

// RateCardPageData feeds the rate card management page.
type RateCardPageData struct {
	Rows       []RateCardRow
	Categories []string
	UOMOptions []string
	Protected  bool
	Unlocked   bool
}

// ImportResultData summarizes an uploaded rate card file.
type ImportResultData struct {
	FileName  string
	TotalRows int
	ValidRows int
	ErrorRows int
	Errors    []ImportErrorRow
}

// ImportErrorRow is one rejected row from an upload.
type ImportErrorRow struct {
	Row     int
	Field   string
	Message string
}
