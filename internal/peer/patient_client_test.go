package peer

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

func TestPatientDirectoryListPatients(t *testing.T) {
	srv := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/patients/me/patients":
			_, _ = w.Write([]byte(`{"data":[{"userId":1,"firstName":"Ada","lastName":"Lovelace"}]}`))
		case "/api/patients/all-with-history":
			_, _ = w.Write([]byte(`{"data":[{"userId":1,"firstName":"Ada","lastName":"Lovelace","medicalHistory":[{"id":3,"patientId":1,"description":"asthma"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	dir := NewPatientDirectory(srv.URL+"/", time.Second)

	patients, err := dir.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Ada", patients[0].FirstName)

	withHistory, err := dir.ListPatientsWithHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, withHistory, 1)
	require.Len(t, withHistory[0].MedicalHistory, 1)
	assert.Equal(t, "asthma", withHistory[0].MedicalHistory[0].Description)
}

func TestPatientDirectoryFailuresAreInternal(t *testing.T) {
	srv := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewPatientDirectory(srv.URL, time.Second).ListPatients(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
