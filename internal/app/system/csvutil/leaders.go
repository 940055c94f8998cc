// Package csvutil reads and writes the CSV surfaces of the leader
// directory and the statistics exports. Exports carry a UTF-8 BOM so
// spreadsheets open them correctly.
package csvutil

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/domain/models"
)

// BOM is the UTF-8 byte order mark prepended to every export.
const BOM = "\uFEFF"

// LeaderColumns is the canonical column order of the leader directory
// CSV. The header row of an import drives column mapping, so columns
// may be reordered, but exports always use this order.
var LeaderColumns = []string{
	"mgCode", "memberId", "chineseName", "firstName", "lastName",
	"email", "phoneNumber", "roles", "parentLeaderName",
	"ordinationDate", "generation", "status", "identity",
}

// ExportFilename names a dated export, e.g.
// Leader_Directory_Export_2024-05-06.csv.
func ExportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}

// WriteLeaders writes the full directory export: BOM, header, then one
// row per leader with every value double-quoted. Roles are joined with
// semicolons within their cell.
func WriteLeaders(w io.Writer, leaders []models.Leader) error {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(LeaderColumns, ","))
	b.WriteByte('\n')
	for _, l := range leaders {
		row := []string{
			l.MGCode,
			l.MemberID,
			l.ChineseName,
			l.FirstName,
			l.LastName,
			l.Email,
			l.PhoneNumber,
			strings.Join(l.Roles, ";"),
			l.ParentLeaderName,
			l.OrdinationDate,
			strconv.Itoa(l.Generation),
			string(l.Status),
			l.Identity,
		}
		b.WriteString(quoteRow(row))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, strings.TrimSuffix(b.String(), "\n"))
	return err
}

// WriteImportTemplate writes the one-row sample file handed out next to
// the import button.
func WriteImportTemplate(w io.Writer) error {
	example := []string{
		"GA", "M1001", "張三", "San", "Zhang", "san.zhang@example.com",
		"90001000", "小組長;族長", "ROOT", "2023-01-01", "1", "active", "Professional",
	}
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(LeaderColumns, ","))
	b.WriteByte('\n')
	b.WriteString(quoteRow(example))
	_, err := io.WriteString(w, b.String())
	return err
}

// ParseLeaders reads a directory CSV. The header row drives column
// mapping; rows missing email or first name are collected as errors
// and the rest are returned for the store merge. Lines may end in CRLF
// or LF, and a leading BOM is ignored.
func ParseLeaders(r io.Reader) (rows []leaderstore.ImportRow, errs []string, err error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return nil, nil, err
	}
	text := strings.TrimPrefix(string(raw), BOM)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, nil, fmt.Errorf("csv file is empty or missing headers")
	}

	headers := splitRow(lines[0])
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	for i := 1; i < len(lines) && len(rows)+len(errs) < MaxRows; i++ {
		values := splitRow(lines[i])
		if len(values) < len(headers) {
			continue
		}
		cell := map[string]string{}
		for j, h := range headers {
			cell[h] = values[j]
		}

		if cell["email"] == "" || cell["firstName"] == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing Email or First Name.", i+1))
			continue
		}

		gen, _ := strconv.Atoi(cell["generation"])
		var roles []string
		for _, role := range strings.Split(cell["roles"], ";") {
			if role != "" {
				roles = append(roles, role)
			}
		}

		rows = append(rows, leaderstore.ImportRow{
			MGCode:           cell["mgCode"],
			MemberID:         cell["memberId"],
			ChineseName:      cell["chineseName"],
			FirstName:        cell["firstName"],
			LastName:         cell["lastName"],
			Email:            cell["email"],
			PhoneNumber:      cell["phoneNumber"],
			Roles:            roles,
			ParentLeaderName: cell["parentLeaderName"],
			OrdinationDate:   cell["ordinationDate"],
			Generation:       gen,
			Status:           models.AccountStatus(cell["status"]),
			Identity:         cell["identity"],
		})
	}
	return rows, errs, nil
}

// quoteRow double-quotes every value, doubling embedded quotes.
func quoteRow(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// splitRow splits a CSV line on commas, honoring double-quoted cells
// and stripping their quotes.
func splitRow(line string) []string {
	var (
		out      []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}
