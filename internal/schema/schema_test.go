package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/grounddb/internal/domain"
)

func TestValidateDomain_RecordDataset(t *testing.T) {
	data := []byte(`[
		{"leaveAt": "08:00", "arriveBy": "8:51", "destination": "cambridge"},
		{"name": "curry garden", "area": "centre"}
	]`)
	assert.NoError(t, ValidateDomain(domain.Train, data))
}

func TestValidateDomain_BadClockTime(t *testing.T) {
	data := []byte(`[{"leaveAt": "25:00"}]`)
	err := ValidateDomain(domain.Train, data)
	require.Error(t, err)

	data = []byte(`[{"arriveBy": "around ten"}]`)
	assert.Error(t, ValidateDomain(domain.Train, data))
}

func TestValidateDomain_NonStringFieldRejected(t *testing.T) {
	data := []byte(`[{"name": "curry garden", "id": 7}]`)
	assert.Error(t, ValidateDomain(domain.Restaurant, data))
}

func TestValidateDomain_FacilityAllowsIntIDs(t *testing.T) {
	data := []byte(`[{"department": "cardiology", "id": 1, "phone": "01223256233"}]`)
	assert.NoError(t, ValidateDomain(domain.Hospital, data))
}

func TestValidateDomain_Taxi(t *testing.T) {
	ok := []byte(`{"taxi_colors": ["black"], "taxi_types": ["bmw"], "taxi_phone": ["^[0-9]{10}$"]}`)
	assert.NoError(t, ValidateDomain(domain.Taxi, ok))

	missing := []byte(`{"taxi_types": ["bmw"]}`)
	assert.Error(t, ValidateDomain(domain.Taxi, missing))

	empty := []byte(`{"taxi_colors": [], "taxi_types": ["bmw"]}`)
	assert.Error(t, ValidateDomain(domain.Taxi, empty), "option lists must be non-empty")
}

func TestValidateDomain_NotAList(t *testing.T) {
	assert.Error(t, ValidateDomain(domain.Restaurant, []byte(`{"name": "curry garden"}`)))
}

func TestValidateDir_CleanFixture(t *testing.T) {
	errs := ValidateDir("../store/testdata/db")
	assert.Empty(t, errs)
}

func TestValidateDir_CollectsPerDomainErrors(t *testing.T) {
	errs := ValidateDir(t.TempDir())
	assert.Len(t, errs, len(domain.All()), "every missing file is reported")
}
