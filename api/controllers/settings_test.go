package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmoralesdev/salon-backoffice/internal/settings"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
)

type stubSettingsService struct {
	listFn    func(ctx context.Context) (map[string]*string, error)
	getFn     func(ctx context.Context, key string) (*settings.SettingDTO, error)
	putFn     func(ctx context.Context, key string, value *string) (*settings.SettingDTO, error)
	backupsFn func(ctx context.Context) ([]settings.BackupDTO, error)
}

func (s *stubSettingsService) ListSettings(ctx context.Context) (map[string]*string, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubSettingsService) GetSetting(ctx context.Context, key string) (*settings.SettingDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, key)
	}
	return &settings.SettingDTO{}, nil
}

func (s *stubSettingsService) PutSetting(ctx context.Context, key string, value *string) (*settings.SettingDTO, error) {
	if s.putFn != nil {
		return s.putFn(ctx, key, value)
	}
	return &settings.SettingDTO{}, nil
}

func (s *stubSettingsService) ListBackups(ctx context.Context) ([]settings.BackupDTO, error) {
	if s.backupsFn != nil {
		return s.backupsFn(ctx)
	}
	return nil, nil
}

func TestSettingsListReturnsMap(t *testing.T) {
	theme := "light"
	svc := &stubSettingsService{
		listFn: func(context.Context) (map[string]*string, error) {
			return map[string]*string{"theme": &theme, "backup_path": nil}, nil
		},
	}

	resp := httptest.NewRecorder()
	SettingsList(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data map[string]*string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, "light", *envelope.Data["theme"])
	require.Nil(t, envelope.Data["backup_path"])
}

func TestSettingPutForwardsKeyAndValue(t *testing.T) {
	var capturedKey string
	var capturedValue *string
	svc := &stubSettingsService{
		putFn: func(_ context.Context, key string, value *string) (*settings.SettingDTO, error) {
			capturedKey = key
			capturedValue = value
			return &settings.SettingDTO{Key: key, Value: value}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/settings/theme", strings.NewReader(`{"value":"dark"}`))
	req = addRouteParam(req, "key", "theme")
	resp := httptest.NewRecorder()
	SettingPut(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "theme", capturedKey)
	require.NotNil(t, capturedValue)
	require.Equal(t, "dark", *capturedValue)
}

func TestSettingPutNullValue(t *testing.T) {
	var capturedValue *string
	called := false
	svc := &stubSettingsService{
		putFn: func(_ context.Context, _ string, value *string) (*settings.SettingDTO, error) {
			called = true
			capturedValue = value
			return &settings.SettingDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/settings/backup_path", strings.NewReader(`{"value":null}`))
	req = addRouteParam(req, "key", "backup_path")
	resp := httptest.NewRecorder()
	SettingPut(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, called)
	require.Nil(t, capturedValue)
}

func TestSettingGetMissingKey(t *testing.T) {
	svc := &stubSettingsService{
		getFn: func(context.Context, string) (*settings.SettingDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		},
	}

	req := addRouteParam(httptest.NewRequest(http.MethodGet, "/api/settings/nope", nil), "key", "nope")
	resp := httptest.NewRecorder()
	SettingGet(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBackupsList(t *testing.T) {
	svc := &stubSettingsService{
		backupsFn: func(context.Context) ([]settings.BackupDTO, error) {
			return []settings.BackupDTO{{ID: 2}, {ID: 1}}, nil
		},
	}

	resp := httptest.NewRecorder()
	BackupsList(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/backups", nil))

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data []settings.BackupDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	require.Equal(t, int64(2), envelope.Data[0].ID)
}
