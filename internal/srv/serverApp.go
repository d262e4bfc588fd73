package srv

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/internal/cache"
	"github.com/verone3d/esp32-rotating-display/internal/glyph"
	"github.com/verone3d/esp32-rotating-display/internal/srv/config"
	"github.com/verone3d/esp32-rotating-display/internal/srv/device"
	"github.com/verone3d/esp32-rotating-display/internal/version"
)

type ServerApp struct {
	*config.ServerConfig

	panelDevice  *device.Panel
	pollerDevice *device.Poller
	tickerDevice *device.Ticker
	apiDevice    *device.Api

	pollCache  *cache.Cache
	rotation   *rotation
	renderer   *glyph.Renderer
	frameDirty bool

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of rotating display server %s ...", version.AppVersion.String())

	app := &ServerApp{
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		ServerConfig:     config.NewServerConfig(configDir, debugMode, simulationMode),
	}

	app.pollCache = cache.New()
	app.renderer = glyph.NewRenderer()
	app.rotation = newRotation(
		app.ServerParam.Display.SlideOrder,
		app.ServerParam.Display.GetSlideDuration(),
		time.Now())

	app.panelDevice = device.NewPanel(app.ServerParam.Display, app.SimulationMode)
	app.pollerDevice = device.NewPoller(app.ServerConfig, app.pollCache)
	app.tickerDevice = device.NewTicker()
	if app.ServerParam.ApiParam.Enabled {
		app.apiDevice = device.NewApi(app.ServerConfig)
	}

	logrus.Debugln("Server created")

	return app
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting rotating display server ...")

	logrus.Printf("Starting devices ...")

	// Start panel device
	s.panelDevice.Start()
	if s.ServerState.DisplayOn() {
		s.panelDevice.SetOn()
	} else {
		s.panelDevice.SetOff()
	}

	// Display first slide before any reading arrives
	s.refreshDisplay()

	// Start event loop
	go s.eventLoop()

	// Start poller device
	s.pollerDevice.Start()

	// Start ticker device
	s.tickerDevice.Start()

	// Start api device
	if s.apiDevice != nil {
		s.apiDevice.Start()
	}
}

func (s *ServerApp) Stop() {
	logrus.Printf("Stopping rotating display server ...")

	// Stop api
	if s.apiDevice != nil {
		s.apiDevice.StopSendingEvent()
	}

	// Stop ticker device
	s.tickerDevice.StopSendingEvent()

	// Stop poller device
	s.pollerDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	// Stop panel device
	s.panelDevice.Stop()

	// Flush config backup
	s.ServerConfig.ServerState.FlushSave()

	logrus.Printf("Server stopped")

	os.Exit(0)
}
