// Package generate produces linked bundles of synthetic revenue-cycle
// records: patients with coverages, claims with line items and diagnoses,
// denials with appeals, payments with adjustments, and worklist tasks.
//
// Generators are pure with respect to the outside world: they perform no
// I/O, take every probability from the organization profile, and draw all
// randomness from the injected source. Persisting the bundles is the
// caller's responsibility.
package generate

import (
	"time"

	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// Generator produces record bundles from a single randomness source. One
// generator serves one seeding chain; it is not safe for concurrent use.
type Generator struct {
	src sampling.Source
}

// New returns a Generator drawing from src.
func New(src sampling.Source) *Generator {
	return &Generator{src: src}
}

var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher", "Daniel", "Matthew", "Anthony",
		"Mark", "Steven", "Andrew", "Joshua", "Kevin", "Brian", "Timothy",
		"Jason", "Ryan", "Jacob", "Eric", "Jonathan", "Justin", "Scott",
		"Brandon", "Benjamin", "Samuel", "Gregory", "Alexander", "Patrick",
		"Jack", "Dennis", "Tyler",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Margaret",
		"Sandra", "Ashley", "Kimberly", "Emily", "Donna", "Michelle",
		"Carol", "Amanda", "Melissa", "Stephanie", "Rebecca", "Laura",
		"Amy", "Angela", "Anna", "Brenda", "Emma", "Nicole", "Samantha",
		"Katherine", "Christine", "Rachel", "Heather",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
		"Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore",
		"Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris",
		"Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
		"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen",
		"Hill", "Flores", "Green", "Adams", "Nelson", "Baker", "Hall",
		"Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
	}
	streets = []string{
		"123 Main St", "456 Oak Ave", "789 Elm St", "321 Pine Rd",
		"654 Maple Dr", "987 Cedar Ln", "147 Birch Blvd", "258 Walnut Way",
		"369 Cherry Ct", "741 Spruce Pl", "852 Willow Rd", "963 Ash St",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "Columbus",
		"Austin", "Jacksonville", "Fort Worth", "Charlotte", "Denver",
	}
	states = []string{
		"NY", "CA", "IL", "TX", "AZ", "PA", "FL", "OH", "NC", "GA",
		"MI", "NJ", "VA", "WA", "CO",
	}
	zips = []string{
		"10001", "90001", "60601", "77001", "85001", "19101", "78201",
		"92101", "75201", "43201", "73301", "32201", "76101", "28201", "80201",
	}
)

func (g *Generator) pick(pool []string) string {
	return pool[sampling.IntN(g.src, len(pool))]
}

// isBusinessDay reports whether t falls Monday through Friday.
func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// toBusinessDay steps t backward to the nearest business day.
func toBusinessDay(t time.Time) time.Time {
	for !isBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// addBusinessDays advances t by n business days.
func addBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if isBusinessDay(t) {
			n--
		}
	}
	return t
}

// daysBetween returns whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
