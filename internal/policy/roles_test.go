package policy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

type stubLookup struct {
	isAdmin bool
	err     error
	calls   int
}

func (s *stubLookup) CheckIsAdmin(ctx context.Context, userID string) (bool, error) {
	s.calls++
	return s.isAdmin, s.err
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(format string, v ...interface{})  {}
func (l *recordingLogger) Error(format string, v ...interface{}) {}
func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func TestRoleResolver_NoIdentityIsAnonymous(t *testing.T) {
	resolver := NewRoleResolver(&stubLookup{}, &recordingLogger{})

	caller := resolver.Resolve(context.Background(), nil)

	assert.True(t, caller.IsAnonymous())
}

func TestRoleResolver_LookupWinsOverMetadata(t *testing.T) {
	lookup := &stubLookup{isAdmin: false}
	log := &recordingLogger{}
	resolver := NewRoleResolver(lookup, log)

	caller := resolver.Resolve(context.Background(), &Identity{
		UserID:       "u-1",
		Email:        "Jean@Example.com",
		MetadataRole: "admin",
	})

	assert.Equal(t, domain.RoleClient, caller.Role)
	assert.Equal(t, "jean@example.com", caller.Email)
	assert.Equal(t, 1, lookup.calls)
	assert.Empty(t, log.warnings)
}

func TestRoleResolver_LookupAdmin(t *testing.T) {
	resolver := NewRoleResolver(&stubLookup{isAdmin: true}, &recordingLogger{})

	caller := resolver.Resolve(context.Background(), &Identity{UserID: "u-1", Email: "boss@garage.test"})

	assert.True(t, caller.IsAdmin())
}

func TestRoleResolver_FallbackIsLogged(t *testing.T) {
	log := &recordingLogger{}
	resolver := NewRoleResolver(&stubLookup{err: errors.New("timeout")}, log)

	caller := resolver.Resolve(context.Background(), &Identity{
		UserID:       "u-1",
		Email:        "boss@garage.test",
		MetadataRole: "Admin",
	})

	assert.True(t, caller.IsAdmin())
	if assert.Len(t, log.warnings, 1) {
		assert.Contains(t, log.warnings[0], "timeout")
	}
}

func TestRoleResolver_WithoutLookup(t *testing.T) {
	log := &recordingLogger{}
	resolver := NewRoleResolver(nil, log)

	caller := resolver.Resolve(context.Background(), &Identity{UserID: "u-2", Email: "jean@example.com"})

	assert.True(t, caller.IsClient())
	assert.Len(t, log.warnings, 1)
}
