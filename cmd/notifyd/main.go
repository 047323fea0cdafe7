// Command notifyd runs the notification gateway: the internal event
// emitter and the public notification service, both backed by a shared
// JetStream-style bus adapter.
package main

import (
	"context"
	"net"
	"os"
	"strconv"
	"sync"

	"google.golang.org/grpc"

	"git.tatikoma.dev/corpix/notify/app"
	"git.tatikoma.dev/corpix/notify/authzclient"
	"git.tatikoma.dev/corpix/notify/bus"
	"git.tatikoma.dev/corpix/notify/config"
	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/handler"
	"git.tatikoma.dev/corpix/notify/internalsvc"
	"git.tatikoma.dev/corpix/notify/log"
	"git.tatikoma.dev/corpix/notify/publicsvc"
	"git.tatikoma.dev/corpix/notify/registryclient"
	"git.tatikoma.dev/corpix/notify/rpc"
	"git.tatikoma.dev/corpix/notify/rpc/auth"
	"git.tatikoma.dev/corpix/notify/wire"
)

// grpcService adapts a *grpc.Server to app.Service: it listens on addr when
// run and stops serving as soon as the supervisor context is cancelled.
type grpcService struct {
	name   string
	addr   string
	server *grpc.Server
}

func (s *grpcService) Name() string    { return s.name }
func (s *grpcService) Enabled() bool   { return true }
func (s *grpcService) Signal(os.Signal) {}

func (s *grpcService) Close() error {
	s.server.GracefulStop()
	return nil
}

func (s *grpcService) Run(ctx context.Context, wg *sync.WaitGroup) error {
	defer wg.Done()

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.Serve(lis) }()

	select {
	case <-ctx.Done():
		s.server.GracefulStop()
		return nil
	case err := <-errCh:
		return errors.Wrapf(err, "%s server stopped serving", s.name)
	}
}

// application wires the gateway's two gRPC services from the environment
// config that app.App's PreRun loads before Run is invoked.
type application struct {
	*app.App[*config.Config]

	mu       sync.Mutex
	services app.Services
}

func (a *application) Services() app.Services {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.services != nil {
		return a.services
	}

	svcs, err := buildServices(a.Config)
	if err != nil {
		errors.Log(err, "failed to build services from config")
		app.Error(err)
	}
	a.services = svcs
	return a.services
}

// dialAddr splits a "host:port"-shaped environment value and dials it.
func dialAddr(l log.Logger, addr string) (*grpc.ClientConn, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid dial address %q", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid port in dial address %q", addr)
	}
	return rpc.NewClientConn(l, host, port)
}

func buildServices(cfg *config.Config) (app.Services, error) {
	adapter, err := bus.New(bus.Config{
		URL:      cfg.NATSURL(),
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect bus adapter")
	}

	h := handler.New(adapter, cfg.PullExpiry)

	eventConn, err := dialAddr(*log.DefaultLogger, cfg.EventService)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial registry service")
	}
	resourceConn, err := dialAddr(*log.DefaultLogger, cfg.ResourceInfoServerHost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial resource hierarchy service")
	}
	authzConn, err := dialAddr(*log.DefaultLogger, cfg.AuthzService)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial authorization service")
	}

	registry := registryclient.New(
		wire.NewRegistryServiceClient(eventConn),
		wire.NewRegistryServiceClient(resourceConn),
	)
	authz := authzclient.New(wire.NewAuthorizationServiceClient(authzConn))

	internalServer := rpc.NewServer(auth.NewInternal(cfg.InternalEventToken), *log.DefaultLogger)
	wire.RegisterInternalEventEmitterServiceServer(internalServer, internalsvc.New(h))

	publicServer := rpc.NewServer(auth.NewPublic(), *log.DefaultLogger)
	wire.RegisterPublicNotificationServiceServer(publicServer, publicsvc.New(registry, authz, h))

	return app.Services{
		&grpcService{name: "internal-event-emitter", addr: cfg.InternalEventServerHost, server: internalServer},
		&grpcService{name: "public-notification", addr: cfg.PublicEventServerHost, server: publicServer},
	}, nil
}

func main() {
	ctx := context.Background()

	r, err := app.NewRuntime(ctx)
	if err != nil {
		app.Error(err)
	}

	self := &application{}
	a := app.New[*config.Config](r, self)
	self.App = a
	a.Init(r)

	if err := a.Exec(os.Args); err != nil {
		app.Error(err)
	}
}
