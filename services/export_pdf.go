package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateDocPDF creates a quotation or invoice PDF using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateDocPDF(data DocExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
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

	addDocHeader(m, data)
	addClientBlock(m, data)
	addDocTableHeader(m)
	for _, r := range data.Rows {
		addDocTableRow(m, r)
	}
	addDocTotals(m, data)
	addAmountInWords(m, data)
	addDocFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addDocHeader adds the company name, document title and number.
func addDocHeader(m core.Maroto, data DocExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(7).Add(
				text.New(data.CompanyName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New(data.Kind, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(data.CompanyAddress, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("No: %s", data.Number), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(fmt.Sprintf("%s  |  VAT No: %s", data.CompanyEmail, data.CompanyVATNo), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		),
	)

	if data.ValidUntil != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Valid until: %s", data.ValidUntil), props.Text{
						Size:  9,
						Align: align.Right,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addClientBlock adds the bill-to details and project name.
func addClientBlock(m core.Maroto, data DocExportData) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("To:", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
				}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(data.ClientName, props.Text{Size: 9}),
			),
		),
	)

	if data.ClientAddress != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(data.ClientAddress, props.Text{
						Size:  8,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}
	if data.ClientVATNo != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("VAT No: %s", data.ClientVATNo), props.Text{
						Size:  8,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}
	if data.ProjectName != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Project: %s", data.ProjectName), props.Text{
						Size:  9,
						Style: fontstyle.Bold,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addDocTableHeader adds the column header row for the line-item table.
func addDocTableHeader(m core.Maroto) {
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
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("VAT %", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addDocTableRow adds one line-item row.
func addDocTableRow(m core.Maroto, r DocExportRow) {
	cellText := props.Text{Size: 8, Align: align.Center}
	cellTextLeft := props.Text{Size: 8, Align: align.Left}
	cellTextRight := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), cellText)),
			col.New(4).Add(text.New(r.Description, cellTextLeft)),
			col.New(1).Add(text.New(trimFloat(r.Qty), cellText)),
			col.New(1).Add(text.New(r.Unit, cellText)),
			col.New(2).Add(text.New(FormatRand(r.UnitPrice), cellTextRight)),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f", r.VATPct), cellText)),
			col.New(2).Add(text.New(FormatRand(r.Total), cellTextRight)),
		),
	)
}

// addDocTotals adds the subtotal, VAT and grand total block.
func addDocTotals(m core.Maroto, data DocExportData) {
	m.AddRows(row.New(3))

	labelText := props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}
	valueText := props.Text{Size: 9, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(10).Add(text.New("Subtotal (excl. VAT):", labelText)),
			col.New(2).Add(text.New(FormatRand(data.TotalBeforeVAT), valueText)),
		),
		row.New(6).Add(
			col.New(10).Add(text.New("VAT:", labelText)),
			col.New(2).Add(text.New(FormatRand(data.VATAmount), valueText)),
		),
		row.New(8).Add(
			col.New(10).Add(text.New("Grand Total:", props.Text{
				Size:  11,
				Align: align.Right,
				Style: fontstyle.Bold,
			})),
			col.New(2).Add(text.New(FormatRand(data.GrandTotal), props.Text{
				Size:  11,
				Align: align.Right,
				Style: fontstyle.Bold,
			})),
		),
	)
}

// addAmountInWords writes the grand total in words under the totals.
func addAmountInWords(m core.Maroto, data DocExportData) {
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in words: %s", AmountToWords(data.GrandTotal)), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
}

// addDocFooter adds notes and the generated-on line.
func addDocFooter(m core.Maroto, data DocExportData) {
	if data.Notes != "" {
		m.AddRows(
			row.New(4),
			row.New(6).Add(
				col.New(12).Add(
					text.New("Notes:", props.Text{Size: 8, Style: fontstyle.Bold}),
				),
			),
			row.New(6).Add(
				col.New(12).Add(
					text.New(data.Notes, props.Text{Size: 8}),
				),
			),
		)
	}

	m.AddRows(
		row.New(8),
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated on %s", data.CreatedDate), props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 120, Green: 120, Blue: 120},
				}),
			),
		),
	)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
