package api

import (
	"errors"
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"

	"pkg.frost.gg/frostline/model"
	"pkg.frost.gg/frostline/supplier"
)

type guildModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerID     string `json:"owner,omitempty"`
	MemberCount int    `json:"member_count"`
}

type memberModel struct {
	UserID   string `json:"user"`
	Username string `json:"username"`
	Nick     string `json:"nick,omitempty"`
}

type messageModel struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel"`
	AuthorID  string `json:"author,omitempty"`
	Content   string `json:"content"`
	Pinned    bool   `json:"pinned,omitempty"`
}

// formatOptional renders an optional foreign ID, leaving absent ones out of
// the JSON entirely.
func formatOptional(s model.Snowflake) string {
	if s == 0 {
		return ""
	}
	return model.FormatSnowflake(s)
}

func (a *API) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, supplier.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, supplier.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// collectMessages drains a message sequence into the JSON response shape.
func (a *API) collectMessages(c *gin.Context, seq iter.Seq2[model.Message, error]) {
	messages := make([]*messageModel, 0)
	for m, err := range seq {
		if err != nil {
			a.abortWithError(c, err)
			return
		}
		messages = append(messages, &messageModel{
			ID:        model.FormatSnowflake(m.ID),
			ChannelID: model.FormatSnowflake(m.ChannelID),
			AuthorID:  formatOptional(m.AuthorID),
			Content:   m.Content,
			Pinned:    m.Pinned,
		})
	}
	c.JSON(http.StatusOK, messages)
}

// registerGetGuild GET /guilds/:id
func (a *API) registerGetGuild() {
	a.router.GET("/guilds/:id", func(c *gin.Context) {
		id, err := model.ParseSnowflake(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		g, err := a.supplier.GetGuild(c.Request.Context(), id)
		if err != nil {
			a.abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, &guildModel{
			ID:          model.FormatSnowflake(g.ID),
			Name:        g.Name,
			OwnerID:     formatOptional(g.OwnerID),
			MemberCount: g.MemberCount,
		})
	})
}

// registerGetGuildMembers GET /guilds/:id/members?limit=100
func (a *API) registerGetGuildMembers() {
	a.router.GET("/guilds/:id/members", func(c *gin.Context) {
		var param struct {
			Limit int `form:"limit,default=100"`
		}

		id, err := model.ParseSnowflake(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := c.ShouldBindQuery(&param); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		seq, err := a.supplier.GetGuildMembers(c.Request.Context(), id, param.Limit)
		if err != nil {
			a.abortWithError(c, err)
			return
		}

		members := make([]*memberModel, 0, param.Limit)
		for m, err := range seq {
			if err != nil {
				a.abortWithError(c, err)
				return
			}
			members = append(members, &memberModel{
				UserID:   model.FormatSnowflake(m.User.ID),
				Username: m.User.Username,
				Nick:     m.Membership.Nick,
			})
		}

		c.JSON(http.StatusOK, members)
	})
}

// registerGetChannelMessages GET /channels/:id/messages?before=...&limit=50
// and GET /channels/:id/pins
func (a *API) registerGetChannelMessages() {
	a.router.GET("/channels/:id/messages", func(c *gin.Context) {
		var param struct {
			Before string `form:"before"`
			After  string `form:"after"`
			Around string `form:"around"`
			Limit  int    `form:"limit,default=50"`
		}

		id, err := model.ParseSnowflake(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := c.ShouldBindQuery(&param); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		var seq iter.Seq2[model.Message, error]
		switch {
		case param.Before != "":
			var cursor model.Snowflake
			if cursor, err = model.ParseSnowflake(param.Before); err == nil {
				seq, err = a.supplier.GetMessagesBefore(ctx, id, cursor, param.Limit)
			}
		case param.After != "":
			var cursor model.Snowflake
			if cursor, err = model.ParseSnowflake(param.After); err == nil {
				seq, err = a.supplier.GetMessagesAfter(ctx, id, cursor, param.Limit)
			}
		case param.Around != "":
			var cursor model.Snowflake
			if cursor, err = model.ParseSnowflake(param.Around); err == nil {
				seq, err = a.supplier.GetMessagesAround(ctx, id, cursor, param.Limit)
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "one of before, after or around is required"})
			return
		}
		if err != nil {
			a.abortWithError(c, err)
			return
		}

		a.collectMessages(c, seq)
	})

	a.router.GET("/channels/:id/pins", func(c *gin.Context) {
		id, err := model.ParseSnowflake(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		a.collectMessages(c, a.supplier.GetChannelPins(c.Request.Context(), id))
	})
}
