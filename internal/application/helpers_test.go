package application_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func requireKind(t *testing.T, err error, kind apperror.Kind, status int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	ae := apperror.From(err)
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, status, ae.StatusCode)
	return ae
}

func strPtr(s string) *string { return &s }
