package main

import (
	"io"
	"net/http"
	"os"

	"github.com/jasonlvhit/gocron"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/earthwalker/api"
	"github.com/a-bouts/earthwalker/demo"
	"github.com/a-bouts/earthwalker/walk"
	"github.com/a-bouts/earthwalker/xmpp"
)

func newRunner(cfg config, out io.Writer) *demo.Runner {
	r := demo.NewRunner(out)
	r.Solver = walk.Solver{MaxIterations: cfg.MaxIterations}
	r.Radius = cfg.Radius
	r.A = cfg.A

	x := xmpp.Xmpp{Config: cfg.Xmpp}
	if x.Enabled() {
		r.Notifier = x
	}
	return r
}

// schedule runs job every n seconds once the scheduler is started.
func schedule(every uint64, job interface{}) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler()
	if err := s.Every(every).Seconds().Do(job); err != nil {
		return nil, err
	}
	return s, nil
}

func run(cfg config, out io.Writer) error {
	if cfg.CPUProfile {
		defer profile.Start().Stop()
	}

	runner := newRunner(cfg, out)

	log.WithField("demo", cfg.Demo).Info("Start walking")
	if err := runner.Run(cfg.Demo); err != nil {
		return err
	}

	var s *gocron.Scheduler
	if cfg.Every > 0 {
		var err error
		s, err = schedule(cfg.Every, func() {
			if err := runner.Run(cfg.Demo); err != nil {
				log.WithError(err).WithField("demo", cfg.Demo).Error("Scheduled walk failed")
			}
		})
		if err != nil {
			return err
		}
	}

	if len(cfg.Listen) > 0 {
		if s != nil {
			go s.Start()
		}
		log.Infof("Start server on %s", cfg.Listen)
		router := api.InitServer(runner.Solver, cfg.Radius)
		return http.ListenAndServe(cfg.Listen, api.Handler(router, log.StandardLogger().Writer()))
	}

	if s != nil {
		<-s.Start()
	}
	return nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := initLogger(os.Stderr, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
