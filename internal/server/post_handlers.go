package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search/query
// @Summary Ranked post search
// @Description Scores published posts against the query. Returns {results} when
// @Description anything scores, {related} with up to five recent posts otherwise,
// @Description and a bare empty array for a blank query.
// @Tags posts
// @Produce json
// @Param q query string true "Free-text query"
// @Success 200 {object} object{results=[]models.Post}
// @Router /posts/search/query [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	result, err := s.searchService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}

	if result.Empty {
		return c.JSON([]*models.Post{})
	}
	if result.Results != nil {
		return c.JSON(fiber.Map{"results": result.Results})
	}
	related := result.Related
	if related == nil {
		related = []*models.Post{}
	}
	return c.JSON(fiber.Map{"related": related})
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPostBySlug handles GET /api/posts/slug/:slug
// @Summary Get a post by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/slug/{slug} [get]
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	post, err := s.postService.GetPostBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,content=string,categories=[]string,tags=[]string,cover_image_url=string} true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title         string   `json:"title"`
		Content       string   `json:"content"`
		Categories    []string `json:"categories"`
		Tags          []string `json:"tags"`
		CoverImageURL string   `json:"cover_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:      currentUserID(c),
		Title:         req.Title,
		Content:       req.Content,
		Categories:    req.Categories,
		Tags:          req.Tags,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string,categories=[]string,tags=[]string,cover_image_url=string} true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         *string  `json:"title"`
		Content       *string  `json:"content"`
		Categories    []string `json:"categories"`
		Tags          []string `json:"tags"`
		CoverImageURL *string  `json:"cover_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:        currentUserID(c),
		PostID:        id,
		Title:         req.Title,
		Content:       req.Content,
		Categories:    req.Categories,
		Tags:          req.Tags,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ReactToPost handles POST /api/posts/:id/react
// @Summary Toggle a reaction on a post
// @Description No reaction adds one, the same kind removes it, a different kind replaces it.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{type=string} true "Reaction kind (like, love, haha, wow, sad, angry)"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/react [post]
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Type models.ReactionKind `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, _, err := s.postService.ToggleReaction(c.Context(), id, currentUserID(c), req.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// ApprovePost handles PATCH /api/posts/:id/approve
// @Summary Set a post's published flag
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{is_published=boolean} false "Defaults to publishing"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/approve [patch]
func (s *Server) ApprovePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req := struct {
		IsPublished *bool `json:"is_published"`
	}{}
	// Body is optional; absence means approve.
	_ = c.BodyParser(&req)
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	post, err := s.postService.ApprovePost(c.Context(), id, published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}
