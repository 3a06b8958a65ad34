package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

func (h *Handler) listCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listCollection").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	collection := models.CollectionType(chi.URLParam(r, "collection"))

	entries, err := h.services.CollectionSyncService.List(ctx, userID, collection)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listCollection").Str("collection", collection.String()).Msg("error listing collection")
		writeError(w, "error listing collection", err)
		return
	}

	response := models.CollectionResponse{
		Items:  entries,
		Length: len(entries),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) pushItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pushItem").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var pushRequest models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pushItem").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	collection := models.CollectionType(chi.URLParam(r, "collection"))

	if err := h.services.CollectionSyncService.Upsert(ctx, userID, collection, pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pushItem").Str("collection", collection.String()).Msg("error pushing item")
		writeError(w, "error pushing item", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.removeItem").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	collection := models.CollectionType(chi.URLParam(r, "collection"))
	resourceID := chi.URLParam(r, "resourceID")

	if err := h.services.CollectionSyncService.Delete(ctx, userID, collection, resourceID); err != nil {
		log.Err(err).Str("func", "*Handler.removeItem").Str("collection", collection.String()).Msg("error removing item")
		writeError(w, "error removing item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.clearCollection").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	collection := models.CollectionType(chi.URLParam(r, "collection"))

	if err := h.services.CollectionSyncService.Clear(ctx, userID, collection); err != nil {
		log.Err(err).Str("func", "*Handler.clearCollection").Str("collection", collection.String()).Msg("error clearing collection")
		writeError(w, "error clearing collection", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
