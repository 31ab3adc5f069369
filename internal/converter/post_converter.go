package converter

import (
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
)

// PostToResponse converts a Post entity without its derived counts.
func PostToResponse(post *entity.Post) *dto.PostResponse {
	if post == nil {
		return nil
	}

	response := &dto.PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.User != nil {
		response.Username = post.User.Username
	}
	return response
}

func CommentToResponse(comment *entity.Comment) *dto.CommentResponse {
	if comment == nil {
		return nil
	}

	response := &dto.CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.User != nil {
		response.Username = comment.User.Username
	}
	return response
}

func CommentsToResponses(comments []entity.Comment) []dto.CommentResponse {
	responses := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *CommentToResponse(&comments[i])
	}
	return responses
}

func ReactionToResponse(reaction *entity.Reaction) *dto.ReactionResponse {
	if reaction == nil {
		return nil
	}

	return &dto.ReactionResponse{
		ID:        reaction.ID,
		UserID:    reaction.UserID,
		PostID:    reaction.PostID,
		Kind:      string(reaction.Kind),
		CreatedAt: reaction.CreatedAt,
	}
}
