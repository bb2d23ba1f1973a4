package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF renders a quote as a PDF document using maroto/v2 and
// returns the raw bytes.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteTableHeader(m)
	for _, r := range data.Rows {
		addQuoteRow(m, r)
	}
	addQuoteSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the project title and client/site/date lines.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	title := data.ProjectName
	if title == "" {
		title = "Interior Quotation"
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(clientLine(data), props.Text{Size: 9, Align: align.Left, Color: grey}),
			),
			col.New(6).Add(
				text.New("Date: "+data.Date, props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
	)
	if data.SiteAddress != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(addressLine(data), props.Text{Size: 9, Align: align.Left, Color: grey}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addQuoteTableHeader adds the column header row.
func addQuoteTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UOM", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Options", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)
}

// addQuoteRow adds one row: room headers get a shaded full-width band,
// items a plain row with an indented description.
func addQuoteRow(m core.Maroto, r QuoteRow) {
	if r.IsRoomHeader {
		bg := &props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 235, Blue: 235}}
		bold := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
		boldRight := bold
		boldRight.Align = align.Right

		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(r.Index, bold)).WithStyle(bg),
				col.New(9).Add(text.New(r.Description, bold)).WithStyle(bg),
				col.New(2).Add(text.New(FormatINR(r.Amount), boldRight)).WithStyle(bg),
			),
		)
		return
	}

	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(1).Add(text.New(r.Index, base)),
			col.New(3).Add(text.New("  "+r.Description, left)),
			col.New(1).Add(text.New(r.UOM, base)),
			col.New(1).Add(text.New(FormatQty(r.Quantity), right)),
			col.New(2).Add(text.New(FormatINR(r.Rate), right)),
			col.New(2).Add(text.New(materialAddOnLabel(r), left)),
			col.New(2).Add(text.New(FormatINR(r.Amount), right)),
		),
	)
}

// addQuoteSummary adds the totals block and the amount in words.
func addQuoteSummary(m core.Maroto, data QuoteExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Subtotal", FormatINR(data.Subtotal)},
		{fmt.Sprintf("GST (%.1f%%)", data.GSTPercent), FormatINR(data.TaxAmount)},
		{fmt.Sprintf("Discount (%.1f%%)", data.DiscountPercent), "-" + FormatINR(data.DiscountAmount)},
		{"Grand Total", FormatINR(data.GrandTotal)},
	}
	for _, line := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.label, label)).WithStyle(summaryBg),
				col.New(4).Add(text.New(line.value, value)).WithStyle(summaryBg),
			),
		)
	}

	m.AddRows(row.New(4))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Amount in words: "+data.AmountInWords, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}
