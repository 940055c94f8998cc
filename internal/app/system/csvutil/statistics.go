// internal/app/system/csvutil/statistics.go
package csvutil

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/church611/shepherdview/internal/domain/stats"
)

// WriteTribeStatistics writes the per-tribe rollup export.
func WriteTribeStatistics(w io.Writer, rows []stats.TribeRow) error {
	headers := []string{
		"Name",
		"Max Gen (最高代數)",
		"MG Code (MG 小組代號)",
		"Total Leaders (族系小組長總數)",
		"Male Leaders (男性小組長總數)",
		"Female Leaders (女性小組長總數)",
		"Gen 1", "Gen 2", "Gen 3", "Gen 4", "Gen 5", "Gen 6+",
	}

	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		name := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			row.Root.MGCode, row.Root.ChineseName, row.Root.FirstName))
		cells := []string{
			`"` + name + `"`,
			strconv.Itoa(row.MaxGeneration),
			row.TribeCode,
			strconv.Itoa(row.TotalDescendants),
			strconv.Itoa(row.MaleCount),
			strconv.Itoa(row.FemaleCount),
		}
		for gen := 1; gen <= 6; gen++ {
			cells = append(cells, strconv.Itoa(row.BreakdownBucket(gen)))
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAGMEvaluation writes the mature-disciple evaluation export in
// the caller's current sort order.
func WriteAGMEvaluation(w io.Writer, rows []stats.AGMRow) error {
	headers := []string{
		"ID-Name", "Roles", "Ordination Date",
		"Direct Disciples", "AGM Mature Disciples", "Total Lineage",
	}

	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		ordination := row.Leader.OrdinationDate
		if ordination == "" {
			ordination = "--"
		}
		cells := []string{
			fmt.Sprintf("%q", row.Leader.MGCode+" - "+row.DisplayName),
			fmt.Sprintf("%q", strings.Join(row.Leader.Roles, ", ")),
			ordination,
			strconv.Itoa(row.DirectCount),
			strconv.Itoa(row.AGMCount),
			strconv.Itoa(row.TotalCount),
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
