package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/earthwalker/demo"
	"github.com/a-bouts/earthwalker/walk"
)

type server struct {
	solver walk.Solver
	radius float64
}

// InitServer routes the walks. Every response is plain text, one line per
// walk, as printed on the console. Requests never search without a bound:
// an unbounded solver gets walk.DefaultMaxIterations.
func InitServer(solver walk.Solver, radius float64) *mux.Router {
	if solver.MaxIterations <= 0 {
		solver.MaxIterations = walk.DefaultMaxIterations
	}

	router := mux.NewRouter().StrictSlash(true)

	s := server{solver: solver, radius: radius}

	api := router.PathPrefix("/walk").Subrouter()
	api.HandleFunc("/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := api.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/solve/{a}", s.solve).Methods(http.MethodGet)
	apiV1.HandleFunc("/demos", s.demos).Methods(http.MethodGet)
	apiV1.HandleFunc("/demo/{name}", s.demo).Methods(http.MethodGet)

	return router
}

// Handler adds access logs written to out and panic recovery.
func Handler(router http.Handler, out io.Writer) http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handlers.CombinedLoggingHandler(out, router))
}

func (s *server) runner(out io.Writer) *demo.Runner {
	r := demo.NewRunner(out)
	r.Solver = s.solver
	r.Radius = s.radius
	return r
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Ok\n")
}

func (s *server) demos(w http.ResponseWriter, r *http.Request) {
	var sb strings.Builder
	for _, name := range demo.Names {
		sb.WriteString(string(name))
		sb.WriteString("\n")
	}
	writeText(w, http.StatusOK, sb.String())
}

func requestLogger(action string, req *http.Request) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func (s *server) solve(w http.ResponseWriter, req *http.Request) {
	logger := requestLogger("solve", req)

	a, err := strconv.ParseFloat(mux.Vars(req)["a"], 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid colatitude %q\n", mux.Vars(req)["a"]))
		return
	}

	start := time.Now()
	res, err := s.solver.Solve(a)
	if err != nil {
		logger.WithError(err).Warn("Solve failed")
		writeText(w, http.StatusUnprocessableEntity, err.Error()+"\n")
		return
	}
	logger.Infof("Solve a=%f took %s (%d)", a, time.Since(start).String(), res.Iterations)

	p := res.Path()
	writeText(w, http.StatusOK, fmt.Sprintf("%s\ngap=%2.9fmi\n", res.Line(s.radius), p.Gap(s.radius)))
}

func (s *server) demo(w http.ResponseWriter, req *http.Request) {
	logger := requestLogger("demo", req)

	name, err := demo.ParseName(mux.Vars(req)["name"])
	if err != nil {
		writeText(w, http.StatusNotFound, err.Error()+"\n")
		return
	}

	var buf bytes.Buffer
	r := s.runner(&buf)
	if q := req.URL.Query().Get("a"); len(q) > 0 {
		if r.A, err = strconv.ParseFloat(q, 64); err != nil {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid colatitude %q\n", q))
			return
		}
	}

	start := time.Now()
	if err := r.Run(name); err != nil {
		logger.WithError(err).Warn("Demo failed")
		status := http.StatusInternalServerError
		if errors.Is(err, walk.ErrNoConvergence) {
			status = http.StatusUnprocessableEntity
		}
		writeText(w, status, err.Error()+"\n")
		return
	}
	logger.Infof("Demo '%s' took %s", name, time.Since(start).String())

	writeText(w, http.StatusOK, buf.String())
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
