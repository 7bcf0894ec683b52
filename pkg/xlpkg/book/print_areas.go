package book

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/refs"
)

const printAreaName = "_xlnm.print_area"

// PrintAreas extracts print areas from the defined names of a workbook.
// Returns a map of sheet name to list of print areas. sheetNames resolves
// references that carry no sheet through the name's localSheetId.
func PrintAreas(names []DefinedName, sheetNames []string, log logrus.FieldLogger) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)
	for _, dn := range names {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		parsed, err := refs.SplitReferences(dn.Value)
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("name", dn.Name).Warn("print area skipped")
			}
			continue
		}
		for _, ref := range parsed {
			sheet := ref.Sheet
			if sheet == "" && dn.LocalSheet >= 0 && dn.LocalSheet < len(sheetNames) {
				sheet = sheetNames[dn.LocalSheet]
			}
			// Whole row or column print areas have open bounds and are not
			// reported.
			if sheet == "" || ref.Bounds.MinRow == 0 || ref.Bounds.MinCol == 0 {
				continue
			}
			result[sheet] = append(result[sheet], toPrintArea(ref.Bounds))
		}
	}
	return result
}

func toPrintArea(b refs.Bounds) models.PrintArea {
	return models.PrintArea{
		R1: b.MinRow,
		C1: b.MinCol,
		R2: b.MaxRow,
		C2: b.MaxCol,
	}
}
