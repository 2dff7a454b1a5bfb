package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint32

// Format2D renders amount with exactly two decimal places: 120 -> "1.20"
// Status reports rely on this being stable, do not switch to float formatting.
func (a Amount) Format2D() string { return fmt.Sprintf("%d.%02d", a/100, a%100) }

func (a Amount) Format100I() string { return fmt.Sprint(float32(a) / 100) }

// Nominal is value of one accepted bill or coin
type Nominal Amount

var ErrNominalInvalid = errors.New("Nominal is not valid for this group")

// NominalGroup counts money comprised of multiple nominals,
// e.g. inserted cash of one kiosk transaction:
// bill5 : 2
// bill10: 1
// total : 20
type NominalGroup struct {
	values map[Nominal]uint
}

func (ng *NominalGroup) SetValid(valid []Nominal) {
	ng.values = make(map[Nominal]uint, len(valid))
	for _, n := range valid {
		if n != 0 {
			ng.values[n] = 0
		}
	}
}

func (ng *NominalGroup) Copy() *NominalGroup {
	ng2 := &NominalGroup{
		values: make(map[Nominal]uint, len(ng.values)),
	}
	for k, v := range ng.values {
		ng2.values[k] = v
	}
	return ng2
}

func (ng *NominalGroup) Add(n Nominal, count uint) error {
	if _, ok := ng.values[n]; !ok {
		return errors.Annotatef(ErrNominalInvalid, "Add(n=%s, c=%d)", Amount(n).Format2D(), count)
	}
	ng.values[n] += count
	return nil
}

func (ng *NominalGroup) Clear() {
	for n := range ng.values {
		ng.values[n] = 0
	}
}

func (ng *NominalGroup) Get(n Nominal) (uint, error) {
	stored, ok := ng.values[n]
	if !ok {
		return 0, ErrNominalInvalid
	}
	return stored, nil
}

// Contains reports whether n is a valid nominal of this group,
// regardless of stored count.
func (ng *NominalGroup) Contains(n Nominal) bool {
	_, ok := ng.values[n]
	return ok
}

func (ng *NominalGroup) Iter(f func(nominal Nominal, count uint) error) error {
	for nominal, count := range ng.values {
		if err := f(nominal, count); err != nil {
			return err
		}
	}
	return nil
}

func (ng *NominalGroup) Total() Amount {
	sum := Amount(0)
	for nominal, count := range ng.values {
		sum += Amount(nominal) * Amount(count)
	}
	return sum
}

func (ng *NominalGroup) String() string {
	parts := make([]string, 0, len(ng.values)+1)
	sum := Amount(0)
	for nominal, count := range ng.values {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Amount(nominal).Format2D(), count))
			sum += Amount(nominal) * Amount(count)
		}
	}
	sort.Strings(parts)
	parts = append(parts, fmt.Sprintf("total:%s", sum.Format2D()))
	return strings.Join(parts, ",")
}
