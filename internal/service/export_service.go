package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "campus-console/pkg/errors"
	"campus-console/pkg/export"
)

// ExportFormat selects the rendering of an export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus the content type to serve them as.
type ExportResult struct {
	ContentType string
	Filename    string
	Bytes       []byte
}

// ExportService renders the current course snapshot into downloadable files.
// It reads the controller's view, not the upstream, so an export shows exactly
// what the operator sees.
type ExportService struct {
	courses *CourseListService
	enabled bool
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(courses *CourseListService, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{courses: courses, enabled: enabled, logger: logger}
}

// CourseList renders the course snapshot in the requested format.
func (s *ExportService) CourseList(format ExportFormat) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "exports are disabled")
	}

	courses := s.courses.Courses()
	data := export.Dataset{
		Headers: []string{"ID", "Tema", "Docente", "Inicio", "Fin", "Precio", "Alumnos"},
		Rows:    make([]map[string]string, 0, len(courses)),
	}
	for _, c := range courses {
		row := map[string]string{
			"ID":      strconv.FormatInt(c.ID, 10),
			"Inicio":  c.StartDate,
			"Fin":     c.EndDate,
			"Precio":  strconv.FormatFloat(c.Price, 'f', 2, 64),
			"Alumnos": strconv.Itoa(len(c.Students)),
		}
		if c.Topic != nil {
			row["Tema"] = c.Topic.Name
		}
		if c.Teacher != nil {
			row["Docente"] = c.Teacher.Name
		}
		data.Rows = append(data.Rows, row)
	}

	switch format {
	case ExportFormatCSV:
		raw, err := export.CSV(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{ContentType: "text/csv", Filename: "cursos.csv", Bytes: raw}, nil
	case ExportFormatPDF:
		raw, err := export.PDF(data, "Listado de cursos")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{ContentType: "application/pdf", Filename: "cursos.pdf", Bytes: raw}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", strings.TrimSpace(string(format))))
	}
}
