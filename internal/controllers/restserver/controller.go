package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/chrissnell/saltwedge/internal/constants"
	"github.com/chrissnell/saltwedge/internal/log"
	"github.com/chrissnell/saltwedge/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	restConfig     config.RESTServerData
	Server         http.Server
	FS             fs.FS
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, rc config.RESTServerData, logger *zap.SugaredLogger) (*Controller, error) {
	if configProvider == nil {
		return nil, fmt.Errorf("REST server requires a configuration provider")
	}

	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		logger:         logger,
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Infof("rest.listen-addr not provided; defaulting to %s (all interfaces)", constants.DefaultListenAddr)
		rc.ListenAddr = constants.DefaultListenAddr
	}

	if rc.Port == 0 {
		logger.Infof("rest.port not provided; defaulting to %d", constants.DefaultHTTPPort)
		rc.Port = constants.DefaultHTTPPort
	}

	if rc.MaxUploadBytes <= 0 {
		rc.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}

	ctrl.restConfig = rc
	ctrl.handlers = NewHandlers(ctrl)
	ctrl.FS = GetAssets()

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = handlers.CompressHandler(ctrl.setupRouter())

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		c.logger.Infof("REST server listening on %s", c.Server.Addr)
		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(log.HTTPLogger(c.logger))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", c.handlers.GetStatus).Methods(http.MethodGet)
	api.HandleFunc("/parameters", c.handlers.GetParameters).Methods(http.MethodGet)
	api.HandleFunc("/parameters", c.handlers.UpdateParameters).Methods(http.MethodPut)
	api.HandleFunc("/compare", c.handlers.Compare).Methods(http.MethodPost)

	router.HandleFunc("/", c.handlers.ServeIndex).Methods(http.MethodGet)

	// Static file serving
	router.PathPrefix("/").Handler(http.FileServer(http.FS(c.FS)))

	return router
}
