package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/cue-league/services"
)

type KnockoutHandler struct {
	knockoutService services.KnockoutService
}

func NewKnockoutHandler(ks services.KnockoutService) *KnockoutHandler {
	return &KnockoutHandler{knockoutService: ks}
}

func (h *KnockoutHandler) ListDraws(w http.ResponseWriter, r *http.Request) {
	draws, err := h.knockoutService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draws": draws}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *KnockoutHandler) LatestDraw(w http.ResponseWriter, r *http.Request) {
	draw, err := h.knockoutService.Latest(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *KnockoutHandler) PreviewDraw(w http.ResponseWriter, r *http.Request) {
	var input services.CreateKnockoutInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.knockoutService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateDraw godoc
// @Summary Generate and save a single elimination draw
// @Tags knockout
// @Accept json
// @Produce json
// @Param body body services.CreateKnockoutInput true "Draw name, players and best-of per round"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /knockout [post]
func (h *KnockoutHandler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	var input services.CreateKnockoutInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.knockoutService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout draw created", slog.Int("draw_id", draw.ID))
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *KnockoutHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.knockoutService.Get(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceMatch godoc
// @Summary Enter a slot score and move the winner on once the match is decided
// @Tags knockout
// @Accept json
// @Produce json
// @Param drawID path int true "Draw ID"
// @Param body body services.AdvanceInput true "Zero-based round, match and slot with the new slot value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /knockout/{drawID}/advance [post]
func (h *KnockoutHandler) AdvanceMatch(w http.ResponseWriter, r *http.Request) {
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

	draw, err := h.knockoutService.Advance(r.Context(), drawID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout advanced", slog.Int("draw_id", drawID), slog.Int("round", input.Round), slog.Int("match", input.Match))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *KnockoutHandler) RecordResults(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.knockoutService.RecordResults(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout results recorded", slog.Int("draw_id", drawID), slog.Int("matches", len(records)))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *KnockoutHandler) ArchiveDraw(w http.ResponseWriter, r *http.Request) {
	drawID, err := getIDFromURL(r, "drawID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.knockoutService.Archive(r.Context(), drawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logWrite(r, "knockout draw archived", slog.Int("draw_id", drawID), slog.String("key", res.Key))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"key": res.Key, "location": res.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
