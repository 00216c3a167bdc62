package server

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/existflow/daymark/internal/model"
	"github.com/labstack/echo/v4"
)

// handleStateGet returns the user's stored document, 404 when none exists
func (s *Server) handleStateGet(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var data string
	err := s.db.QueryRow(`
		SELECT data FROM documents WHERE user_id = $1`,
		userID,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no document"})
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(data))
}

// handleStatePut replaces the user's document wholesale. The last writer
// wins; no merging is attempted.
func (s *Server) handleStatePut(c echo.Context) error {
	userID := c.Get("user_id").(string)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	// Reject payloads that do not parse as an app document. Legacy
	// payloads are upgraded before storage.
	data, err := model.UnmarshalAppData(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid document"})
	}
	canonical, err := data.Marshal()
	if err != nil {
		c.Logger().Error("marshal error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (user_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			data = $2,
			updated_at = NOW()`,
		userID, string(canonical),
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Document saved for user %s", userID)

	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}

// handleClear deletes the user's stored document
func (s *Server) handleClear(c echo.Context) error {
	userID := c.Get("user_id").(string)

	if _, err := s.db.Exec(`DELETE FROM documents WHERE user_id = $1`, userID); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
