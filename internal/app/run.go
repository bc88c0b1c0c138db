package app

import (
	"context"
	"log"

	"artie/internal/config"
	"artie/internal/events"
	"artie/internal/gateway"
	"artie/internal/history"
	"artie/internal/interpret"
	"artie/internal/link"
	"artie/internal/llm"
	"artie/internal/prompt"
	"artie/internal/sensor"
	"artie/internal/session"
	"artie/internal/syncx"
	"artie/internal/trigger"
)

const (
	logPrefix = "[artie]"

	startupMsg = "시스템 시작. Gemma 두뇌 탑재 완료."
)

// Run wires the driver together and blocks until the session terminates
// or the context is cancelled. The transport is owned here; it is closed
// on cancellation so the reader's pending ReadLine unblocks and the
// group can drain.
func Run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	tr := openTransport(cfg)
	defer tr.Close()

	bus := events.NewBus()
	cell := &sensor.Cell{}
	pipeline := interpret.NewPipeline(backend, prompt.NewStore(cfg.PromptFile), nil)

	group := syncx.NewGroup(ctx)
	ctrl := session.NewController(cell, pipeline, link.NewTransmitter(tr), bus, group, cancel)

	if cfg.HistoryPath != "" {
		rec, err := history.Open(cfg.HistoryPath, bus)
		if err != nil {
			return err
		}
		defer rec.Close()
		group.Go(rec.Run)
		log.Printf("%s history: %s", logPrefix, cfg.HistoryPath)
	}

	group.Go(ctrl.Run)
	group.Go(trigger.NewMonitor(bus, ctrl, nil).Run)
	group.Go(link.NewReader(tr, cell, bus, cfg.Verbose).Run)
	group.Go(gateway.NewServer(cfg.GatewayAddr, bus, ctrl).Run)
	group.Go(func(ctx context.Context) {
		<-ctx.Done()
		_ = tr.Close()
	})

	log.Printf("%s started: transport=%s backend=%s model=%s gateway=%s",
		logPrefix, cfg.Transport, cfg.Backend, cfg.Model, cfg.GatewayAddr)
	bus.Publish(events.NewSystem(startupMsg))

	<-group.Context().Done()
	group.Wait()
	log.Printf("%s shut down cleanly", logPrefix)
	return nil
}

// openTransport never fails: a missing device degrades to the simulation
// transport so the session still runs.
func openTransport(cfg config.Config) link.Transport {
	switch cfg.Transport {
	case config.TransportMQTT:
		tr, err := link.OpenMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTelemetryTopic, cfg.MQTTCommandTopic)
		if err != nil {
			log.Printf("%s mqtt unavailable, running in simulation mode: %v", logPrefix, err)
			return link.NewSim()
		}
		log.Printf("%s mqtt connected: %s", logPrefix, cfg.MQTTBroker)
		return tr
	case config.TransportSim:
		log.Printf("%s simulation transport selected", logPrefix)
		return link.NewSim()
	default:
		tr, err := link.OpenSerial(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			log.Printf("%s serial unavailable, running in simulation mode: %v", logPrefix, err)
			return link.NewSim()
		}
		log.Printf("%s serial connected: %s", logPrefix, cfg.SerialPort)
		return tr
	}
}

func newBackend(cfg config.Config) (llm.Backend, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return llm.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature, cfg.TopP)
	default:
		return llm.NewOllama(cfg.OllamaHost, cfg.Model, cfg.Temperature, cfg.TopP), nil
	}
}
