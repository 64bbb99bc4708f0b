package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"recipe-book/domain"
	"recipe-book/internal/api/presenters"
	"recipe-book/pkg/favorite"
	"recipe-book/pkg/recipe"
)

type (
	FavoriteHandler interface {
		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		recipeService recipe.RecipeService
		store         *session.Store
		locker        *favorite.SessionLocker
		cookieName    string
	}
)

func NewFavoriteHandler(recipeService recipe.RecipeService, store *session.Store, locker *favorite.SessionLocker, cookieName string) FavoriteHandler {
	return &favoriteHandler{
		recipeService: recipeService,
		store:         store,
		locker:        locker,
		cookieName:    cookieName,
	}
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	var ids []uint
	err := h.withFavorites(c, func(favorites favorite.FavoriteService) error {
		ids = favorites.IDs()
		return nil
	})
	if err != nil {
		return failResponse(c, domain.MessageFailedGetFavorites, err)
	}

	recipes, err := h.recipeService.GetRecipesByIDs(c.Context(), ids)
	if err != nil {
		return failResponse(c, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, domain.FavoritesResponse{
		IDs:     ids,
		Recipes: recipes,
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

// AddFavorite marks the recipe. A body of {"favorite": "no"} removes the mark instead.
func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	recipeID, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddFavorite, domain.ErrRecipeNotFound)
	}

	req := new(domain.FavoriteRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	if strings.EqualFold(strings.TrimSpace(req.Favorite), "no") {
		return h.remove(c, recipeID)
	}

	if _, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID); err != nil {
		return failResponse(c, domain.MessageFailedAddFavorite, err)
	}

	var ids []uint
	err = h.withFavorites(c, func(favorites favorite.FavoriteService) error {
		if err := favorites.Add(recipeID); err != nil {
			return err
		}
		ids = favorites.IDs()
		return nil
	})
	if err != nil {
		return failResponse(c, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, domain.FavoriteIDsResponse{IDs: ids}, fiber.StatusOK, domain.MessageSuccessAddFavorite)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	recipeID, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRemoveFavorite, domain.ErrRecipeNotFound)
	}
	return h.remove(c, recipeID)
}

func (h *favoriteHandler) remove(c *fiber.Ctx, recipeID uint) error {
	var ids []uint
	err := h.withFavorites(c, func(favorites favorite.FavoriteService) error {
		if err := favorites.Remove(recipeID); err != nil {
			return err
		}
		ids = favorites.IDs()
		return nil
	})
	if err != nil {
		return failResponse(c, domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, domain.FavoriteIDsResponse{IDs: ids}, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

// withFavorites loads the caller's session under the per-session lock, so two
// concurrent requests of one visitor cannot overwrite each other's change.
func (h *favoriteHandler) withFavorites(c *fiber.Ctx, fn func(favorite.FavoriteService) error) error {
	unlock := h.locker.Lock(c.Cookies(h.cookieName))
	defer unlock()

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	return fn(favorite.NewFavoriteService(sess))
}
