package analyticsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
	"github.com/jiaming2012/options-analytics/src/pricing"
	"github.com/jiaming2012/options-analytics/src/volatility"
)

var queryDecoder = schema.NewDecoder()

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

// Server serves pricing on demand and surface series built from a loaded
// batch of analytics.
type Server struct {
	items        []eventmodels.ChainAnalyticsItem
	latticeSteps int
	solverOpts   volatility.SolverOptions
}

func NewServer(items []eventmodels.ChainAnalyticsItem, latticeSteps int, solverOpts volatility.SolverOptions) *Server {
	if latticeSteps < 1 {
		latticeSteps = pricing.DefaultLatticeSteps
	}

	return &Server{
		items:        items,
		latticeSteps: latticeSteps,
		solverOpts:   solverOpts,
	}
}

func (s *Server) SetupHandler(router *mux.Router) {
	router.HandleFunc("/analytics/price", s.priceHandler).Methods("POST")
	router.HandleFunc("/analytics/iv", s.ivHandler).Methods("POST")
	router.HandleFunc("/analytics/surface/smile", s.smileHandler).Methods("GET")
	router.HandleFunc("/analytics/surface/term", s.termStructureHandler).Methods("GET")
}

type PriceRequest struct {
	Spec       eventmodels.OptionContractSpec `json:"spec"`
	Market     eventmodels.MarketState        `json:"market"`
	Volatility float64                        `json:"volatility"`
}

func (s *Server) priceHandler(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("priceHandler: failed to decode request", http.StatusBadRequest, err, w)
		return
	}

	model := pricing.ModelForStyle(req.Spec.ExerciseStyle, s.latticeSteps)

	result, err := model.Greeks(req.Spec, req.Market, req.Volatility)
	if err != nil {
		setErrorResponse("priceHandler: failed to price contract", http.StatusUnprocessableEntity, err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("priceHandler: %v", err)
	}
}

func (s *Server) ivHandler(w http.ResponseWriter, r *http.Request) {
	var quote eventmodels.OptionQuote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		setErrorResponse("ivHandler: failed to decode request", http.StatusBadRequest, err, w)
		return
	}

	model := pricing.ModelForStyle(quote.Spec.ExerciseStyle, s.latticeSteps)

	result, err := volatility.Solve(quote, model, s.solverOpts)
	if err != nil {
		setErrorResponse("ivHandler: failed to solve implied volatility", http.StatusUnprocessableEntity, err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("ivHandler: %v", err)
	}
}

type SmileRequest struct {
	Expiration          string `schema:"expiration,required"`
	OptionType          string `schema:"option_type"`
	IncludeNonConverged bool   `schema:"include_non_converged"`
}

func (s *Server) smileHandler(w http.ResponseWriter, r *http.Request) {
	var req SmileRequest
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		setErrorResponse("smileHandler: failed to decode query", http.StatusBadRequest, err, w)
		return
	}

	series, err := volatility.BuildSmile(s.items, req.Expiration, volatility.SurfaceOptions{
		IncludeNonConverged: req.IncludeNonConverged,
		OptionType:          eventmodels.OptionType(req.OptionType),
	})
	if err != nil {
		if errors.Is(err, eventmodels.InvalidInputErr) {
			setErrorResponse("smileHandler: failed to build smile", http.StatusBadRequest, err, w)
			return
		}

		setErrorResponse("smileHandler: failed to build smile", http.StatusNotFound, err, w)
		return
	}

	if err := setResponse(series, w); err != nil {
		log.Errorf("smileHandler: %v", err)
	}
}

type TermStructureRequest struct {
	MoneynessBand       float64 `schema:"moneyness_band"`
	IncludeNonConverged bool    `schema:"include_non_converged"`
}

func (s *Server) termStructureHandler(w http.ResponseWriter, r *http.Request) {
	req := TermStructureRequest{MoneynessBand: 0.1}
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		setErrorResponse("termStructureHandler: failed to decode query", http.StatusBadRequest, err, w)
		return
	}

	series, err := volatility.BuildTermStructure(s.items, req.MoneynessBand, volatility.SurfaceOptions{
		IncludeNonConverged: req.IncludeNonConverged,
	})
	if err != nil {
		setErrorResponse("termStructureHandler: failed to build term structure", http.StatusNotFound, err, w)
		return
	}

	if err := setResponse(series, w); err != nil {
		log.Errorf("termStructureHandler: %v", err)
	}
}
