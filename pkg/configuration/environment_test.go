package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "payroll",
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
	}
	require.Equal(t,
		"host=db.internal port=5433 user=svc dbname=payroll password=secret sslmode=disable",
		opts.ConnectionString(),
	)
}

func TestPayrollOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    PayrollOptions
		wantErr bool
	}{
		{"defaults", PayrollOptions{ParamCeiling: 65000, ExistenceChunk: 1000}, false},
		{"ceiling too low", PayrollOptions{ParamCeiling: 10, ExistenceChunk: 5}, true},
		{"ceiling above driver limit", PayrollOptions{ParamCeiling: 70000, ExistenceChunk: 1000}, true},
		{"chunk zero", PayrollOptions{ParamCeiling: 65000, ExistenceChunk: 0}, true},
		{"chunk above ceiling", PayrollOptions{ParamCeiling: 1000, ExistenceChunk: 2000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadEnv_MissingFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PAYROLL_PARAM_CEILING=2000\n"), 0o644))

	n, err := LoadEnv([]string{envFile, filepath.Join(dir, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "2000", os.Getenv("PAYROLL_PARAM_CEILING"))
	t.Cleanup(func() { _ = os.Unsetenv("PAYROLL_PARAM_CEILING") })
}
