package peer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// Kind names the owning service of a foreign reference.
type Kind string

const (
	KindUser   Kind = "USER"
	KindDoctor Kind = "DOCTOR"
)

const maxLookupBody = 1 << 20

// OutcomeRecorder receives validation outcomes for diagnostics.
type OutcomeRecorder interface {
	RecordValidation(kind string, ok bool)
}

// Endpoints maps each kind to the base URL of its owning service.
type Endpoints struct {
	UserServiceURL   string
	DoctorServiceURL string
}

// Validator confirms foreign references by calling the owning service's
// lookup-by-id endpoint. Every failure mode surfaces as NOT_FOUND.
type Validator struct {
	client    *http.Client
	endpoints Endpoints
	logger    *zap.Logger
	recorder  OutcomeRecorder
}

// NewValidator builds a validator whose calls are bounded by timeout.
func NewValidator(endpoints Endpoints, timeout time.Duration, logger *zap.Logger, recorder OutcomeRecorder) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		client:    &http.Client{Timeout: timeout},
		endpoints: endpoints,
		logger:    logger,
		recorder:  recorder,
	}
}

// ValidateExists returns nil when the referenced entity exists and a
// NOT_FOUND DomainError otherwise, including when the peer is unreachable.
func (v *Validator) ValidateExists(ctx context.Context, kind Kind, id int64) error {
	url := v.lookupURL(kind, id)
	if url == "" {
		return apperrors.NewInternalError(fmt.Errorf("unknown reference kind %q", kind))
	}
	return v.validatePath(ctx, kind, url)
}

func (v *Validator) validatePath(ctx context.Context, kind Kind, url string) error {
	v.logger.Info("validating reference", zap.String("kind", string(kind)), zap.String("url", url))
	err := v.lookup(ctx, url)
	if v.recorder != nil {
		v.recorder.RecordValidation(string(kind), err == nil)
	}
	if err != nil {
		v.logger.Warn("reference validation failed",
			zap.String("kind", string(kind)),
			zap.String("url", url),
			zap.Error(err))
		return apperrors.NewNotFound(resourceName(kind), nil)
	}
	return nil
}

func resourceName(kind Kind) string {
	if kind == KindDoctor {
		return "doctor"
	}
	return "user"
}

func (v *Validator) lookupURL(kind Kind, id int64) string {
	switch kind {
	case KindUser:
		return fmt.Sprintf("%s/api/users/%d", strings.TrimRight(v.endpoints.UserServiceURL, "/"), id)
	case KindDoctor:
		return fmt.Sprintf("%s/api/doctors/%d", strings.TrimRight(v.endpoints.DoctorServiceURL, "/"), id)
	default:
		return ""
	}
}

func (v *Validator) lookup(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupBody))
	if err != nil {
		return fmt.Errorf("read lookup body: %w", err)
	}
	return existenceSignal(body)
}

// existenceSignal accepts a JSON object or literal true as "exists", either
// bare or inside a {"data": ...} envelope.
func existenceSignal(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty lookup body")
	}

	var signal any
	if err := json.Unmarshal(trimmed, &signal); err != nil {
		return fmt.Errorf("decode lookup body: %w", err)
	}
	if envelope, ok := signal.(map[string]any); ok {
		if data, wrapped := envelope["data"]; wrapped {
			signal = data
		}
	}
	switch value := signal.(type) {
	case bool:
		if value {
			return nil
		}
	case map[string]any:
		if len(value) > 0 {
			return nil
		}
	}
	return fmt.Errorf("lookup body does not signal existence")
}
