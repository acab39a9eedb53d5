package http

// ProcessCommand godoc
// @Summary Process a natural-language command
// @Description Parse a free-text inventory command ("dodaj 2 mleka na pierwszą półkę") and apply it atomically
// @Tags Command
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{command=string} true "Command text"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Empty utterance, unknown intent or missing argument"
// @Failure 404 {object} Response "Item or shelf not found"
// @Failure 409 {object} Response "Insufficient quantity or concurrent modification"
// @Failure 422 {object} Response "Ambiguous reference; candidates listed"
// @Router /api/command/process [post]
func (h *CommandHandler) ProcessCommandDoc() {}
