package api

import (
	"errors"
	"net/http"
	"strings"

	models "OptScreen/internal/domain/models"
	"OptScreen/internal/usecase"
	xhttp "OptScreen/pkg/http"
	xlogger "OptScreen/pkg/logger"
	"OptScreen/pkg/util"

	"github.com/labstack/echo/v4"
)

// ScreenerEchoHandler exposes presets, screening and greeks over HTTP.
type ScreenerEchoHandler struct {
	logger   *xlogger.Logger
	screener *usecase.ScreenerService
	greeks   *usecase.GreeksService
}

var _ xhttp.Handler = (*ScreenerEchoHandler)(nil)

func NewScreenerEchoHandler(logger *xlogger.Logger, screener *usecase.ScreenerService, greeks *usecase.GreeksService) *ScreenerEchoHandler {
	return &ScreenerEchoHandler{logger: logger, screener: screener, greeks: greeks}
}

func (h *ScreenerEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/presets", h.Presets)
	g.POST("/presets/validate", h.ValidatePreset)
	g.GET("/screen/:preset", h.Screen)
	g.GET("/greeks", h.Greeks)
}

func (h *ScreenerEchoHandler) Presets(c echo.Context) error {
	names, err := h.screener.Presets(c.Request().Context())
	if err != nil {
		h.logger.Error("list presets", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("cannot list presets").WithError(err))
	}
	return xhttp.ListResponse(c, names, int64(len(names)))
}

// Screen answers 422 for rejected presets and 502 when the screener fails.
// Empty results are a normal 200.
func (h *ScreenerEchoHandler) Screen(c echo.Context) error {
	req := &models.ScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.screener.Screen(c.Request().Context(), req.Preset)
	if err != nil {
		if errors.Is(err, usecase.ErrPresetNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("preset %q not found", req.Preset).WithParam("preset", req.Preset))
		}
		h.logger.Error("screen usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	switch res.Outcome {
	case models.OutcomeRejected:
		return xhttp.UnprocessableResponse(c, res)
	case models.OutcomeRequestFailed:
		return xhttp.DataResponse(c, http.StatusBadGateway, res)
	default:
		return xhttp.SuccessResponse(c, res)
	}
}

type validateResponse struct {
	Preset string                  `json:"preset"`
	Valid  bool                    `json:"valid"`
	Errors models.ValidationErrors `json:"errors"`
	Text   string                  `json:"text,omitempty"`
}

// ValidatePreset checks an ad-hoc preset posted as an ordered field list.
func (h *ScreenerEchoHandler) ValidatePreset(c echo.Context) error {
	req := &models.ValidatePresetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p := &models.Preset{Name: req.Name}
	for _, f := range req.Fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		p.Fields = append(p.Fields, f)
	}

	ctx := c.Request().Context()
	var errs models.ValidationErrors
	if req.Offline {
		errs = h.screener.ValidateSyntax(ctx, p)
	} else {
		errs = h.screener.Validate(ctx, p)
	}
	if errs == nil {
		errs = models.ValidationErrors{}
	}

	return xhttp.SuccessResponse(c, validateResponse{
		Preset: p.Name,
		Valid:  len(errs) == 0,
		Errors: errs,
		Text:   errs.String(),
	})
}

type greeksResponse struct {
	Contract string               `json:"contract"`
	Points   []models.GreeksPoint `json:"points"`
}

func (h *ScreenerEchoHandler) Greeks(c echo.Context) error {
	req := &models.GreeksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	q := models.GreeksQuery{ChainID: req.Chain, Ticker: req.Ticker, Strike: req.Strike, Put: req.Put}
	if req.Chain == "" {
		expiry, ok := util.ParseDate(req.Expiry)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("expiry must be YYYY-MM-DD"))
		}
		q.Expiry = expiry
	}

	contract, points, err := h.greeks.History(c.Request().Context(), q)
	if err != nil {
		if code := xhttp.StatusCode(err); code != 0 {
			return xhttp.AppErrorResponse(c, xhttp.BadGatewayErrorf("screener answered %d for %s", code, contract).WithError(err))
		}
		h.logger.Error("greeks usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayErrorf("greeks lookup failed for %s", contract).WithError(err))
	}
	if points == nil {
		points = []models.GreeksPoint{}
	}
	return xhttp.SuccessResponse(c, greeksResponse{Contract: contract, Points: points})
}
