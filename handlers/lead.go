package handlers

import (
	"context"
	"errors"
	"net/http"

	"studio_landing_go/models"
	"studio_landing_go/services"
	"studio_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// LeadRelay forwards accepted forms to the studio chat
type LeadRelay interface {
	Forward(ctx context.Context, payload models.LeadPayload, remoteIP string) error
	ForwardSubscription(ctx context.Context, payload models.SubscriptionPayload, remoteIP string) error
}

// SendLeadHandler accepts the lead form JSON and answers {success} or {error, fields}
func SendLeadHandler(relay LeadRelay) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var payload models.LeadPayload
		if err := c.Bind(&payload); err != nil {
			c.Logger().Warnf("Failed to bind lead payload: %v", err)
			return c.JSON(http.StatusBadRequest, models.RelayResponse{Error: i18n.T(ctx, "relay.invalid_form")})
		}

		if err := relay.Forward(ctx, payload, c.RealIP()); err != nil {
			return relayError(c, err)
		}

		return c.JSON(http.StatusOK, models.RelayResponse{Success: i18n.T(ctx, "relay.success")})
	}
}

// SubscribeHandler accepts the newsletter form, JSON or form-encoded
func SubscribeHandler(relay LeadRelay) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var payload models.SubscriptionPayload
		if err := c.Bind(&payload); err != nil {
			c.Logger().Warnf("Failed to bind subscription payload: %v", err)
			return c.JSON(http.StatusBadRequest, models.RelayResponse{Error: i18n.T(ctx, "relay.invalid_form")})
		}

		if err := relay.ForwardSubscription(ctx, payload, c.RealIP()); err != nil {
			return relayError(c, err)
		}

		return c.JSON(http.StatusOK, models.RelayResponse{Success: i18n.T(ctx, "relay.subscribed")})
	}
}

// relayError writes a rejected relay request as {error, fields}
func relayError(c echo.Context, err error) error {
	var fe *services.ForwardError
	if !errors.As(err, &fe) {
		c.Logger().Errorf("Unexpected relay error: %v", err)
		return c.JSON(http.StatusInternalServerError, models.RelayResponse{
			Error: i18n.T(c.Request().Context(), "relay.server_error"),
		})
	}

	if fe.Status >= http.StatusInternalServerError {
		c.Logger().Errorf("Relay failed: %v", err)
	} else {
		c.Logger().Warnf("Relay rejected: %v", err)
	}
	return c.JSON(fe.Status, models.RelayResponse{Error: fe.Message, Fields: fe.Fields})
}
