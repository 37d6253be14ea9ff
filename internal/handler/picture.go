package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/templui/userbase/internal/picture"
)

// PictureHandler serves placeholder picture choices. Both endpoints write
// their payload without the envelope.
type PictureHandler struct {
	pictures *picture.Provider
}

func NewPictureHandler(pictures *picture.Provider) *PictureHandler {
	return &PictureHandler{
		pictures: pictures,
	}
}

type randomPictureResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GET /randomProfilePicture
func (h *PictureHandler) Random(w http.ResponseWriter, r *http.Request) {
	option := h.pictures.Random()
	writeJSON(w, http.StatusOK, randomPictureResponse{
		ID:  option.ID,
		URL: option.URLs.Regular,
	})
}

// GET /profilePictureOptions/{count}
func (h *PictureHandler) Options(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.PathValue("count"))
	if err != nil {
		writeRawError(w, http.StatusBadRequest, "count must be a number")
		return
	}

	options, err := h.pictures.Options(count)
	if err != nil {
		if errors.Is(err, picture.ErrInvalidCount) {
			writeRawError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeRawError(w, http.StatusInternalServerError, "failed to build picture options")
		return
	}
	writeJSON(w, http.StatusOK, options)
}
