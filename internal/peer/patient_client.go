package peer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// PatientDirectory reads patient listings owned by the patient service.
type PatientDirectory struct {
	client  *http.Client
	baseURL string
}

// NewPatientDirectory builds a client for the patient service.
func NewPatientDirectory(baseURL string, timeout time.Duration) *PatientDirectory {
	return &PatientDirectory{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListPatients returns every patient profile.
func (d *PatientDirectory) ListPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	var out []dto.PatientResponse
	if err := d.get(ctx, "/api/patients/me/patients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPatientsWithHistory returns every patient profile with its medical history.
func (d *PatientDirectory) ListPatientsWithHistory(ctx context.Context) ([]dto.PatientWithHistoryResponse, error) {
	var out []dto.PatientWithHistoryResponse
	if err := d.get(ctx, "/api/patients/all-with-history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get decodes the {"data": ...} envelope. Failures are internal errors: a
// listing has no "absent" outcome to collapse into.
func (d *PatientDirectory) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("patient service: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewInternalError(fmt.Errorf("patient service returned status %d", resp.StatusCode))
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: target}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("decode patient listing: %w", err))
	}
	return nil
}
