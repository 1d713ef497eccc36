// Package aggregate computes the dashboard numbers over parsed documents.
// Every function is pure and deterministic: no state, no mutation of inputs,
// safe to call concurrently.
package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/money"
)

// businessSuffix marks a buyer registered through an establishment code: the
// identification of a business buyer ends in this 3-digit suffix.
const businessSuffix = "001"

// IsBusiness reports whether a document belongs to the business bucket.
func IsBusiness(d model.Document) bool {
	id := d.BuyerID()
	return len(id) >= len(businessSuffix) && id[len(id)-len(businessSuffix):] == businessSuffix
}

// SplitBusiness partitions docs into business and personal buckets. The two
// results are disjoint and together cover the input, in input order.
func SplitBusiness[D model.Document](docs []D) (business, personal []D) {
	for _, d := range docs {
		if IsBusiness(d) {
			business = append(business, d)
		} else {
			personal = append(personal, d)
		}
	}
	return business, personal
}

// Semester is a fixed six-month reporting period.
type Semester int

const (
	FirstSemester  Semester = 1 // January through June
	SecondSemester Semester = 2 // July through December
)

func (s Semester) String() string {
	if s == FirstSemester {
		return "1st semester"
	}
	return "2nd semester"
}

// SemesterOf buckets a document by its issuance month. A date that does not
// read as DD/MM/YYYY is an error, never a silent bucket assignment.
func SemesterOf(d model.Document) (Semester, error) {
	t, err := time.Parse("02/01/2006", d.IssueDate())
	if err != nil {
		return 0, model.NewParseError(model.KindInvalidDate, d.File(),
			fmt.Sprintf("cannot read issuance date %q", d.IssueDate()), err)
	}
	if t.Month() <= time.June {
		return FirstSemester, nil
	}
	return SecondSemester, nil
}

// BySemester partitions docs into first/second semester buckets. Documents
// with unreadable dates land in invalid so the caller can surface them
// instead of miscounting them.
func BySemester[D model.Document](docs []D) (first, second, invalid []D) {
	for _, d := range docs {
		s, err := SemesterOf(d)
		if err != nil {
			invalid = append(invalid, d)
			continue
		}
		if s == FirstSemester {
			first = append(first, d)
		} else {
			second = append(second, d)
		}
	}
	return first, second, invalid
}

// TotalAmount sums the grand totals; an empty collection sums to zero.
func TotalAmount[D model.Document](docs []D) decimal.Decimal {
	total := money.Zero
	for _, d := range docs {
		total = total.Add(d.Total())
	}
	return total
}

// AverageAmount is the mean grand total. An empty collection is reported as
// ErrNoData rather than producing a division by zero.
func AverageAmount[D model.Document](docs []D) (decimal.Decimal, error) {
	if len(docs) == 0 {
		return money.Zero, model.ErrNoData
	}
	return money.Div(TotalAmount(docs), decimal.NewFromInt(int64(len(docs)))), nil
}
