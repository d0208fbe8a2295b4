package entry

import "strings"

// Directory indexes employees and projects for lookups by id, code and badge.
// A nil Directory behaves as an empty one.
type Directory struct {
	employees map[string]Employee
	projects  map[string]Project
}

// NewDirectory builds a Directory from the given records.
func NewDirectory(employees []Employee, projects []Project) *Directory {
	d := &Directory{
		employees: make(map[string]Employee, len(employees)),
		projects:  make(map[string]Project, len(projects)),
	}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	for _, p := range projects {
		d.projects[p.ID] = p
	}
	return d
}

// Employee returns the employee with the given id.
func (d *Directory) Employee(id string) (Employee, bool) {
	if d == nil {
		return Employee{}, false
	}
	e, ok := d.employees[id]
	return e, ok
}

// Project returns the project with the given id.
func (d *Directory) Project(id string) (Project, bool) {
	if d == nil {
		return Project{}, false
	}
	p, ok := d.projects[id]
	return p, ok
}

// EmployeeName returns the display name for id, or "" if unknown.
func (d *Directory) EmployeeName(id string) string {
	e, _ := d.Employee(id)
	return e.Name
}

// ProjectCode returns the project code for id, or "" if unknown.
func (d *Directory) ProjectCode(id string) string {
	p, _ := d.Project(id)
	return p.Code
}

// ProjectName returns the project name for id, or "" if unknown.
func (d *Directory) ProjectName(id string) string {
	p, _ := d.Project(id)
	return p.Name
}

// ProjectByCode finds a project by code, ignoring case.
func (d *Directory) ProjectByCode(code string) (Project, bool) {
	if d == nil {
		return Project{}, false
	}
	for _, p := range d.projects {
		if strings.EqualFold(p.Code, code) {
			return p, true
		}
	}
	return Project{}, false
}

// EmployeeByBadge finds an employee by badge code, ignoring case.
func (d *Directory) EmployeeByBadge(badge string) (Employee, bool) {
	if d == nil || badge == "" {
		return Employee{}, false
	}
	for _, e := range d.employees {
		if e.Badge != "" && strings.EqualFold(e.Badge, badge) {
			return e, true
		}
	}
	return Employee{}, false
}
