package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chrissnell/dikeprep/internal/revetment"
	"github.com/chrissnell/dikeprep/pkg/bundleformat"
	"github.com/chrissnell/dikeprep/pkg/config"
)

// ErrFileReference is returned for a request configuration that points at server-side files
var ErrFileReference = errors.New("file references are not accepted; send forcing and dike inline")

// ZoneRequest asks for the coordinates of one zone on an inline profile
type ZoneRequest struct {
	Dike config.DikeData `json:"dike" yaml:"dike"`
	Zone config.ZoneData `json:"zone" yaml:"zone"`
}

// ZoneResponse carries the generated cross-shore positions
type ZoneResponse struct {
	XPositions []float64 `json:"x_positions" msgpack:"x_positions"`
	ZPositions []float64 `json:"z_positions" msgpack:"z_positions"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "ok\n")
}

// prepare turns a posted configuration, YAML or JSON, into a bundle
func (s *Server) prepare(w http.ResponseWriter, req *http.Request) {
	formatter, ok := s.formatter(w, req)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}
	cfg, err := config.ParseYAML(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid configuration: %v", err), http.StatusBadRequest)
		return
	}
	if cfg.Forcing.File != "" || cfg.Dike.File != "" {
		http.Error(w, ErrFileReference.Error(), http.StatusBadRequest)
		return
	}

	s.writeBundle(w, req, formatter, cfg)
}

// storedBundle prepares a configuration from the store
func (s *Server) storedBundle(w http.ResponseWriter, req *http.Request) {
	formatter, ok := s.formatter(w, req)
	if !ok {
		return
	}

	name := mux.Vars(req)["name"]
	cfg, err := s.store.LoadNamedConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			http.Error(w, "configuration not found", http.StatusNotFound)
			return
		}
		s.logger.Errorw("failed to load configuration", "name", name, "error", err)
		http.Error(w, "error loading configuration", http.StatusInternalServerError)
		return
	}

	s.writeBundle(w, req, formatter, cfg)
}

func (s *Server) configNames(w http.ResponseWriter, req *http.Request) {
	names, err := s.store.ConfigNames()
	if err != nil {
		s.logger.Errorw("failed to list configurations", "error", err)
		http.Error(w, "error listing configurations", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.write(w, bundleformat.NewFormatter(bundleformat.JSON, false), http.StatusOK, names)
}

func (s *Server) zoneCoordinates(w http.ResponseWriter, req *http.Request) {
	formatter, ok := s.formatter(w, req)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}
	var zr ZoneRequest
	if err := config.DecodeYAML(body, &zr); err != nil {
		http.Error(w, fmt.Sprintf("invalid zone request: %v", err), http.StatusBadRequest)
		return
	}
	if zr.Dike.File != "" {
		http.Error(w, ErrFileReference.Error(), http.StatusBadRequest)
		return
	}

	in, err := config.BuildInput(&config.ConfigData{Dike: zr.Dike, Zones: []config.ZoneData{zr.Zone}}, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.Dike == nil {
		http.Error(w, "a dike profile is required", http.StatusBadRequest)
		return
	}

	xs, err := in.Zones[0].Definition.Coordinates(in.Dike)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	zs, err := in.Dike.Elevations(xs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.write(w, formatter, http.StatusOK, ZoneResponse{XPositions: xs, ZPositions: zs})
}

func (s *Server) defaults(w http.ResponseWriter, req *http.Request) {
	formatter, ok := s.formatter(w, req)
	if !ok {
		return
	}

	method, err := revetment.ParseCalculationMethod(mux.Vars(req)["method"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.write(w, formatter, http.StatusOK, revetment.DefaultSettings(method))
}

func (s *Server) writeBundle(w http.ResponseWriter, req *http.Request, formatter *bundleformat.Formatter, cfg *config.ConfigData) {
	in, err := config.BuildInput(cfg, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bundle, err := s.preparer.Prepare(req.Context(), in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.write(w, formatter, http.StatusOK, bundle)
}

// formatter selects the response encoding from the format query parameter
func (s *Server) formatter(w http.ResponseWriter, req *http.Request) (*bundleformat.Formatter, bool) {
	format, err := bundleformat.ParseFormat(req.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return bundleformat.NewFormatter(format, false), true
}

func (s *Server) write(w http.ResponseWriter, formatter *bundleformat.Formatter, status int, data any) {
	w.Header().Set("Content-Type", formatter.Format().ContentType())
	w.WriteHeader(status)
	if err := formatter.Encode(w, data); err != nil {
		s.logger.Errorw("failed to write response", "error", err)
	}
}
