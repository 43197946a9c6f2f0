package commands

import (
	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/config"
	"tableflip.dev/micropost/pkg/daily"
	"tableflip.dev/micropost/pkg/data"
	"tableflip.dev/micropost/pkg/store"
	"tableflip.dev/micropost/pkg/vault"
)

// newEngine assembles the service from configuration: the vault, the daily
// document resolver, the settings blob, and a fresh in-memory store.
func newEngine() (*app.Service, *vault.Dir, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	v, err := vault.NewDir(cfg.VaultDir())
	if err != nil {
		return nil, nil, err
	}

	blob := data.NewStore(cfg.BlobDir())
	d, err := blob.Load()
	if err != nil {
		return nil, nil, err
	}

	svc := &app.Service{
		Vault: v,
		Daily: &daily.Notes{Vault: v, Dir: cfg.DailyDir()},
		Store: store.New(),
		Data:  d,
		Blob:  blob,
	}
	return svc, v, nil
}
