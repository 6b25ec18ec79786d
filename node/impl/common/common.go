package common

import (
	"context"

	"github.com/gbrlsnchs/jwt/v3"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/node/modules/dtypes"
)

var session = uuid.New()

var log = logging.Logger("common")

type CommonAPI struct {
	fx.In

	APISecret    *dtypes.APIAlg
	ShutdownChan dtypes.ShutdownChan
	NodeType     build.NodeType
}

type jwtPayload struct {
	Allow []auth.Permission
}

func (a *CommonAPI) AuthVerify(ctx context.Context, token string) ([]auth.Permission, error) {
	var payload jwtPayload
	if _, err := jwt.Verify([]byte(token), (*jwt.HMACSHA)(a.APISecret), &payload); err != nil {
		return nil, xerrors.Errorf("JWT Verification failed: %w", err)
	}

	return payload.Allow, nil
}

func (a *CommonAPI) AuthNew(ctx context.Context, perms []auth.Permission) ([]byte, error) {
	p := jwtPayload{
		Allow: perms, // TODO: consider checking validity
	}

	return jwt.Sign(&p, (*jwt.HMACSHA)(a.APISecret))
}

func (a *CommonAPI) Version(context.Context) (api.APIVersion, error) {
	v, err := build.VersionForType(a.NodeType)
	if err != nil {
		return api.APIVersion{}, err
	}

	return api.APIVersion{
		Version:    build.UserVersion(),
		APIVersion: v,
		Network:    build.NetworkName,
	}, nil
}

func (a *CommonAPI) Shutdown(ctx context.Context) error {
	log.Warn("shutdown requested over the API")
	a.ShutdownChan <- struct{}{}
	return nil
}

func (a *CommonAPI) Session(ctx context.Context) (uuid.UUID, error) {
	return session, nil
}
