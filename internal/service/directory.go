package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/importer"
	"github.com/markargand/labourlog/internal/storage"
)

// Directory lookup errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrAmbiguousName    = errors.New("name matches more than one employee")
)

// ImportSummary reports the outcome of a project import.
type ImportSummary struct {
	Imported   []entry.Project
	Skipped    int
	Duplicates int
}

// SeedSummary reports how many records a seed added and skipped.
type SeedSummary struct {
	Employees int
	Projects  int
	Skipped   int
}

// DirectoryService manages employees and projects
type DirectoryService struct {
	session *Session
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(session *Session) *DirectoryService {
	return &DirectoryService{session: session}
}

// Employees returns every employee in creation order.
func (s *DirectoryService) Employees() []entry.Employee {
	return s.session.Snapshot().Employees
}

// Projects returns every project in creation order.
func (s *DirectoryService) Projects() []entry.Project {
	return s.session.Snapshot().Projects
}

// AddEmployee quick-adds an employee. Badge and PIN are optional.
func (s *DirectoryService) AddEmployee(name, badge, pin string) (entry.Employee, error) {
	var added entry.Employee
	err := s.session.update(false, func(st *storage.State) error {
		e, err := s.newEmployee(st, name, badge, pin)
		if err != nil {
			return err
		}
		added = e
		return nil
	})
	return added, err
}

func (s *DirectoryService) newEmployee(st *storage.State, name, badge, pin string) (entry.Employee, error) {
	name = strings.TrimSpace(name)
	badge = strings.TrimSpace(badge)
	if err := entry.ValidateNewEmployee(name, badge, st.Employees); err != nil {
		return entry.Employee{}, err
	}
	e := entry.Employee{ID: s.session.NewID(), Name: name, Badge: badge, PIN: strings.TrimSpace(pin)}
	st.Employees = append(st.Employees, e)
	return e, nil
}

// AddProject quick-adds a project. Codes are unique ignoring case.
func (s *DirectoryService) AddProject(code, name string) (entry.Project, error) {
	var added entry.Project
	err := s.session.update(false, func(st *storage.State) error {
		p, err := s.newProject(st, code, name)
		if err != nil {
			return err
		}
		added = p
		return nil
	})
	return added, err
}

func (s *DirectoryService) newProject(st *storage.State, code, name string) (entry.Project, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := entry.ValidateNewProject(code, name, st.Projects); err != nil {
		return entry.Project{}, err
	}
	p := entry.Project{ID: s.session.NewID(), Code: code, Name: name}
	st.Projects = append(st.Projects, p)
	return p, nil
}

// ImportProjects adds the projects in a CSV sheet. A bad header aborts the
// whole import; bad or duplicate rows are skipped and counted.
func (s *DirectoryService) ImportProjects(r io.Reader) (ImportSummary, error) {
	var summary ImportSummary
	err := s.session.update(false, func(st *storage.State) error {
		dir := st.Directory()
		parsed, err := importer.ParseProjects(r, func(code string) bool {
			_, ok := dir.ProjectByCode(code)
			return ok
		})
		if err != nil {
			return err
		}

		summary.Skipped = parsed.Skipped
		summary.Duplicates = parsed.Duplicates
		for _, row := range parsed.Rows {
			p, err := s.newProject(st, row.Code, row.Name)
			if err != nil {
				summary.Skipped++
				continue
			}
			summary.Imported = append(summary.Imported, p)
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

// Seed adds the employees and projects in seed. Records that clash with
// existing ones are skipped and counted.
func (s *DirectoryService) Seed(seed importer.Seed) (SeedSummary, error) {
	var summary SeedSummary
	err := s.session.update(false, func(st *storage.State) error {
		summary = SeedSummary{}
		for _, e := range seed.Employees {
			if s.hasEmployeeNamed(st, e.Name) {
				summary.Skipped++
				continue
			}
			if _, err := s.newEmployee(st, e.Name, e.Badge, e.PIN); err != nil {
				summary.Skipped++
				continue
			}
			summary.Employees++
		}
		for _, p := range seed.Projects {
			if _, err := s.newProject(st, p.Code, p.Name); err != nil {
				summary.Skipped++
				continue
			}
			summary.Projects++
		}
		return nil
	})
	return summary, err
}

func (s *DirectoryService) hasEmployeeNamed(st *storage.State, name string) bool {
	for _, e := range st.Employees {
		if strings.EqualFold(e.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// FindEmployee resolves ref as an id, a badge code, or a name ignoring case.
func (s *DirectoryService) FindEmployee(ref string) (entry.Employee, error) {
	st := s.session.Snapshot()
	dir := st.Directory()
	ref = strings.TrimSpace(ref)

	if e, ok := dir.Employee(ref); ok {
		return e, nil
	}
	if e, ok := dir.EmployeeByBadge(ref); ok {
		return e, nil
	}

	var match []entry.Employee
	for _, e := range st.Employees {
		if strings.EqualFold(e.Name, ref) {
			match = append(match, e)
		}
	}
	switch len(match) {
	case 0:
		return entry.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return entry.Employee{}, fmt.Errorf("%w: %s", ErrAmbiguousName, ref)
	}
}

// FindProject resolves ref as an id or a project code ignoring case.
func (s *DirectoryService) FindProject(ref string) (entry.Project, error) {
	dir := s.session.Snapshot().Directory()
	ref = strings.TrimSpace(ref)

	if p, ok := dir.Project(ref); ok {
		return p, nil
	}
	if p, ok := dir.ProjectByCode(ref); ok {
		return p, nil
	}
	return entry.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, ref)
}
