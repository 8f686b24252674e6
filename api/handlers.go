package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"threadwell-api/board"
	"threadwell-api/domain"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, svc BoardService, logger *log.Logger) {
	e.GET("/api/board", getBoard(svc, logger))
	e.POST("/api/board", postBoard(svc), DecompressRequestMiddleware())
	e.DELETE("/api/board/columns/:columnId", deleteColumn(svc))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getBoard(svc BoardService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		loadStart := time.Now()
		state, loadErr := svc.Load(ctx)
		metrics.ObserveLoad(time.Since(loadStart))
		if loadErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(loadErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "failed to retrieve board state",
				Details: loadErr.Error(),
			})
			return err
		}
		metrics.SetListsReturned(len(state.Lists))
		metrics.SetCardsReturned(len(state.Cards))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, state)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func postBoard(svc BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, boardSnapshotMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)

		var state domain.BoardState
		if err := dec.Decode(&state); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}

		if err := svc.Replace(ctx, &state); err != nil {
			if errors.Is(err, board.ErrMalformedState) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed board state"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "failed to save board state",
				Details: err.Error(),
			})
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "Board state saved successfully"})
	}
}

func deleteColumn(svc BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		columnID := c.Param("columnId")
		if columnID == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "column ID is required"})
		}

		// Deleting an absent column succeeds as a no-op; the client
		// re-fetches either way.
		if err := svc.DeleteColumn(ctx, columnID); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "failed to delete column",
				Details: err.Error(),
			})
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "Column deleted successfully"})
	}
}
