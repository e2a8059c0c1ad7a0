package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// Concrete scenario 2: seeding ONLINE and IDENTITY entries, then setting
// IDENTITY again, must leave exactly two entries with ONLINE unchanged.
func TestInvalidityMapSetReplacesOnlyItsOwnType(t *testing.T) {
	m := models.InvalidityMap{}
	onlineWritten := time.Now().Add(-time.Hour)
	m.Set(models.InvalidityOnline, true, onlineWritten, "")
	m.Set(models.InvalidityIdentity, false, onlineWritten, "no identity set")

	identityWritten := time.Now()
	m.Set(models.InvalidityIdentity, true, identityWritten, "")

	require.Len(t, m, 2)
	require.Equal(t, onlineWritten, m[models.InvalidityOnline].Updated, "ONLINE entry must be untouched by an IDENTITY write")
	require.True(t, m[models.InvalidityIdentity].Valid)
	require.Equal(t, identityWritten, m[models.InvalidityIdentity].Updated)
}

func TestInvalidityMapValidIsConjunction(t *testing.T) {
	m := models.InvalidityMap{}
	require.False(t, m.Valid(), "an empty map is conservatively invalid")

	m.Set(models.InvalidityOnline, true, time.Now(), "")
	require.True(t, m.Valid())

	m.Set(models.InvalidityIdentity, false, time.Now(), "no identity")
	require.False(t, m.Valid())

	m.Set(models.InvalidityIdentity, true, time.Now(), "")
	require.True(t, m.Valid())
}

func TestInvalidityMapCloneIsIndependent(t *testing.T) {
	m := models.InvalidityMap{}
	m.Set(models.InvalidityOnline, true, time.Now(), "")

	clone := m.Clone()
	clone.Set(models.InvalidityOnline, false, time.Now(), "offline")

	require.True(t, m[models.InvalidityOnline].Valid, "mutating the clone must not affect the original")
	require.False(t, clone[models.InvalidityOnline].Valid)
}
