// internal/app/features/events/form.go
package events

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"go.uber.org/zap"
)

// eventInput carries the text fields of the event form for validation.
type eventInput struct {
	Name         string `validate:"notblank,max=200" label:"Event name"`
	Description  string `validate:"notblank,max=5000" label:"Description"`
	TypeID       string `validate:"notblank" label:"Event type"`
	Organization string `validate:"max=200" label:"Organization"`
	Department   string `validate:"max=200" label:"Department"`
	DateStart    string `validate:"required,isodate" label:"Start date"`
	TimeStart    string `validate:"omitempty,clock" label:"Start time"`
	DateEnd      string `validate:"required,isodate" label:"End date"`
	TimeEnd      string `validate:"omitempty,clock" label:"End time"`
	Location     string `validate:"notblank,max=300" label:"Location"`
}

var errTooLarge = errors.New("upload too large")

// submission is a parsed event form.
type submission struct {
	input    eventInput
	existing []string
	files    []*multipart.FileHeader
	form     *multipart.Form
}

// close removes temp files the multipart parser spilled to disk.
func (s *submission) close() {
	if s.form != nil {
		_ = s.form.RemoveAll()
	}
}

func (h *Handler) parseSubmission(w http.ResponseWriter, r *http.Request) (*submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errTooLarge
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		// Plain url-encoded posts (no files) are accepted for edits.
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	get := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	s := &submission{
		input: eventInput{
			Name:         get("name"),
			Description:  get("description"),
			TypeID:       get("type"),
			Organization: get("organization"),
			Department:   get("department"),
			DateStart:    get("date_start"),
			TimeStart:    get("time_start"),
			DateEnd:      get("date_end"),
			TimeEnd:      get("time_end"),
			Location:     get("location"),
		},
		form: r.MultipartForm,
	}
	for _, v := range r.Form["existingImages"] {
		if v = strings.TrimSpace(v); v != "" {
			s.existing = append(s.existing, v)
		}
	}
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			if fh.Size > 0 {
				s.files = append(s.files, fh)
			}
		}
	}
	return s, nil
}

// validate runs field rules plus the cross-field and image checks. needImage
// is true on create, where at least one image is required.
func (h *Handler) validate(s *submission, needImage bool) (*inputval.Result, backend.EventInput) {
	res := inputval.Validate(s.input)
	in := backend.EventInput{
		Name:           s.input.Name,
		Description:    s.input.Description,
		TypeID:         s.input.TypeID,
		Organization:   s.input.Organization,
		Department:     s.input.Department,
		Location:       s.input.Location,
		ExistingImages: s.existing,
	}

	loc := h.Settings.Loc()
	start, errStart := inputval.CombineDateTime(s.input.DateStart, s.input.TimeStart, loc)
	end, errEnd := inputval.CombineDateTime(s.input.DateEnd, s.input.TimeEnd, loc)
	if errStart == nil && errEnd == nil {
		in.DateStart, in.DateEnd = start, end
		if end.Before(start) {
			res.Add("DateEnd", "End must not be before start.")
		}
	}

	if needImage && len(s.files) == 0 {
		res.Add("Images", "At least one image is required.")
	}
	if !needImage && len(s.files) == 0 && len(s.existing) == 0 {
		res.Add("Images", "Keep at least one image or upload a new one.")
	}
	for _, fh := range s.files {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			res.Add("Images", fh.Filename+" is not an image.")
		}
	}
	return res, in
}

// openUploads opens the accepted files. The caller closes them.
func openUploads(files []*multipart.FileHeader) ([]backend.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	ups := make([]backend.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		ups = append(ups, backend.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return ups, closeAll, nil
}

// typeOptions loads the event type dropdown, sorted by name.
func (h *Handler) typeOptions(ctx context.Context) []typeOption {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	types, err := h.API.EventTypes(ctx)
	if err != nil {
		h.Log.Warn("load event types failed", zap.Error(err))
		return nil
	}
	return toTypeOptions(types)
}

func toTypeOptions(types []models.EventType) []typeOption {
	out := make([]typeOption, 0, len(types))
	for _, t := range types {
		out = append(out, typeOption{ID: t.ID, Name: t.EventType})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// fill copies the submitted values back onto the form for re-rendering.
func (d *formData) fill(in eventInput) {
	d.Name = in.Name
	d.Description = in.Description
	d.TypeID = in.TypeID
	d.Organization = in.Organization
	d.Department = in.Department
	d.DateStart = in.DateStart
	d.TimeStart = in.TimeStart
	d.DateEnd = in.DateEnd
	d.TimeEnd = in.TimeEnd
	d.Location = in.Location
}

func currentUserID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}
