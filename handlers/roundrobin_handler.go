package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/services"
)

type RoundRobinHandler struct {
	roundRobinService services.RoundRobinService
}

func NewRoundRobinHandler(rs services.RoundRobinService) *RoundRobinHandler {
	return &RoundRobinHandler{roundRobinService: rs}
}

type generateKnockoutInput struct {
	TopN int `json:"top_n"`
}

// ListDraws godoc
// @Summary List round robin draws, newest start date first
// @Tags roundrobin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /roundrobin [get]
func (h *RoundRobinHandler) ListDraws(w http.ResponseWriter, r *http.Request) {
	draws, err := h.roundRobinService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draws": draws}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateDraw godoc
// @Summary Split players into groups, schedule every group and save the draw
// @Tags roundrobin
// @Accept json
// @Produce json
// @Param body body services.CreateRoundRobinInput true "Draw settings"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "Dates could not be assigned with the configured limits"
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /roundrobin [post]
func (h *RoundRobinHandler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRoundRobinInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "round robin draw created", slog.Int("draw_id", draw.ID))
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundRobinHandler) PreviewDraw(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRoundRobinInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetDraw godoc
// @Summary Get a round robin draw
// @Tags roundrobin
// @Produce json
// @Param drawID path int true "Draw ID"
// @Success 200 {object} map[string]interface{} "degraded is set when stored data could not be read"
// @Failure 404 {object} map[string]string
// @Router /roundrobin/{drawID} [get]
func (h *RoundRobinHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.Get(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundRobinHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tables, err := h.roundRobinService.Standings(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitFrames godoc
// @Summary Record frame points for one group match
// @Tags roundrobin
// @Accept json
// @Produce json
// @Param drawID path int true "Draw ID"
// @Param groupIndex path int true "Zero-based group position"
// @Param matchIndex path int true "Zero-based match position in the group"
// @Param body body brackets.FrameScores true "Comma-separated frame points and breaks"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Stored draw is damaged"
// @Security BearerAuth
// @Router /roundrobin/{drawID}/groups/{groupIndex}/matches/{matchIndex}/frames [post]
func (h *RoundRobinHandler) SubmitFrames(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupIndex, err := getIndexFromURL(r, "groupIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchIndex, err := getIndexFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var scores brackets.FrameScores
	if err := readJSON(w, r, &scores); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.SubmitFrames(r.Context(), drawID, groupIndex, matchIndex, scores)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "frames submitted", slog.Int("draw_id", drawID), slog.Int("group", groupIndex), slog.Int("match", matchIndex))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundRobinHandler) GenerateKnockout(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input generateKnockoutInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.GenerateKnockout(r.Context(), drawID, input.TopN)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout generated", slog.Int("draw_id", drawID), slog.Int("top_n", input.TopN))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundRobinHandler) AdvanceKnockout(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AdvanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.roundRobinService.AdvanceKnockout(r.Context(), drawID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout advanced", slog.Int("draw_id", drawID), slog.Int("round", input.Round), slog.Int("match", input.Match))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundRobinHandler) ArchiveDraw(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.roundRobinService.Archive(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "round robin draw archived", slog.Int("draw_id", drawID), slog.String("key", res.Key))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"key": res.Key, "location": res.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
