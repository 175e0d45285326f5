// Package hr is the demo domain shared by the examples and the mockhr cli,
// a roster of managers with seeded mock-data generation.
package hr

import "fmt"

// Manager is a flat record describing one manager in the roster.
type Manager struct {
	ID         int64   `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Department string  `json:"department" yaml:"department"`
	Salary     float64 `json:"salary" yaml:"salary"`
}

func (m Manager) String() string {
	return fmt.Sprintf("#%d %s (%s) $%.2f", m.ID, m.Name, m.Department, m.Salary)
}
