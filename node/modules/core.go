package modules

import (
	"context"

	"github.com/gbrlsnchs/jwt/v3"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/journal"
	"github.com/filebank-network/filebank/journal/fsjournal"
	"github.com/filebank-network/filebank/node/config"
	"github.com/filebank-network/filebank/node/modules/dtypes"
	"github.com/filebank-network/filebank/node/modules/helpers"
	"github.com/filebank-network/filebank/node/repo"
)

var log = logging.Logger("modules")

func LockedRepo(lr repo.LockedRepo) func(lc fx.Lifecycle) repo.LockedRepo {
	return func(lc fx.Lifecycle) repo.LockedRepo {
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return lr.Close()
			},
		})

		return lr
	}
}

func Datastore(mctx helpers.MetricsCtx, r repo.LockedRepo) (dtypes.MetadataDS, error) {
	return r.Datastore(mctx, "/metadata")
}

type jwtPayload struct {
	Allow []auth.Permission
}

// APISecret loads the token signing key from the repo and makes sure the
// repo holds an admin token for local clients.
func APISecret(lr repo.LockedRepo) (*dtypes.APIAlg, error) {
	sk, err := lr.APISecret()
	if err != nil {
		return nil, xerrors.Errorf("couldn't get JWT secret: %w", err)
	}
	alg := jwt.NewHS256(sk)

	if !lr.Readonly() {
		p := jwtPayload{
			Allow: api.AllPermissions,
		}
		cliToken, err := jwt.Sign(&p, alg)
		if err != nil {
			return nil, xerrors.Errorf("signing admin token: %w", err)
		}
		if err := lr.SetAPIToken(cliToken); err != nil {
			return nil, xerrors.Errorf("storing admin token: %w", err)
		}
	}

	return (*dtypes.APIAlg)(alg), nil
}

// JournalDisabledEvents takes the disabled events from the config, falling
// back to the environment when the config leaves them unset.
func JournalDisabledEvents(cfg *config.Root) (journal.DisabledEvents, error) {
	if cfg.Journal.DisabledEvents == "" {
		return journal.EnvDisabledEvents(), nil
	}
	de, err := journal.ParseDisabledEvents(cfg.Journal.DisabledEvents)
	if err != nil {
		return nil, xerrors.Errorf("parsing disabled journal events: %w", err)
	}
	return de, nil
}

func OpenFilesystemJournal(lr repo.LockedRepo, lc fx.Lifecycle, cfg *config.Root, disabled journal.DisabledEvents) (journal.Journal, error) {
	jrnl, err := fsjournal.OpenFSJournal(lr.Path(), disabled, cfg.Journal.MaxBackups)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error { return jrnl.Close() },
	})

	return jrnl, err
}
