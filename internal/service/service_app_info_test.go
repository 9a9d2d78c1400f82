package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/models"
)

func TestNewAppInfoService_PrefersBuildVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "0.0.1"}, models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "N/A", svc.BuildInfo().BuildCommit())
}

func TestNewAppInfoService_FallsBackToConfig(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "0.0.1"}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "0.0.1", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_NoVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
