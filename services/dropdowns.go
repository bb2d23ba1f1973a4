package services

// UOMOptions lists the units of measure offered in item forms.
var UOMOptions = []string{
	UOMSquareFeet,
	UOMRunningFeet,
	UOMNumbers,
}

// GSTOptions lists the GST percentage choices for project settings.
var GSTOptions = []int{0, 5, 12, 18, 28}

// ProjectTypeOptions lists the project type choices for the project form.
var ProjectTypeOptions = []string{
	"Residential",
	"Commercial",
	"Office",
	"Retail",
}
