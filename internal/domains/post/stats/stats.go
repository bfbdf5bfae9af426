// Package stats computes summary statistics over a post collection. Every
// function is a pure single pass over its input: no I/O, no shared state,
// safe to call concurrently.
package stats

import (
	"errors"

	"github.com/hanameee/bloglist-backend/internal/domains/post"
)

// ErrEmptyInput is a programmer error: aggregation over an empty
// collection is undefined and callers must guard against it.
var ErrEmptyInput = errors.New("aggregation over an empty collection")

// AuthorBlogs is the author with the most posts.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the author with the most cumulative likes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every aggregate over one collection. For an empty
// collection TotalLikes is 0 and the remaining fields are null.
type Summary struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *post.Post   `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

// Summarize runs every aggregate, guarding the empty-input cases itself so
// callers never see ErrEmptyInput.
func Summarize(posts []post.Post) Summary {
	s := Summary{TotalLikes: TotalLikes(posts)}
	if len(posts) == 0 {
		return s
	}

	if favorite, err := FavoriteBlog(posts); err == nil {
		s.FavoriteBlog = &favorite
	}
	if blogs, err := MostBlogs(posts); err == nil {
		s.MostBlogs = &blogs
	}
	if likes, err := MostLikes(posts); err == nil {
		s.MostLikes = &likes
	}

	return s
}

// TotalLikes sums the like counts. The empty collection sums to 0.
func TotalLikes(posts []post.Post) int {
	total := 0
	for _, p := range posts {
		total += p.Likes
	}
	return total
}

// FavoriteBlog returns the post with the most likes. Ties favor the
// earliest post in input order: the incumbent is only replaced when a
// later post is strictly greater.
func FavoriteBlog(posts []post.Post) (post.Post, error) {
	if len(posts) == 0 {
		return post.Post{}, ErrEmptyInput
	}

	favorite := posts[0]
	for _, p := range posts[1:] {
		if p.Likes > favorite.Likes {
			favorite = p
		}
	}

	return favorite, nil
}

// MostBlogs groups posts by author and returns the largest group. When
// several authors tie, any one of them may be returned.
func MostBlogs(posts []post.Post) (AuthorBlogs, error) {
	if len(posts) == 0 {
		return AuthorBlogs{}, ErrEmptyInput
	}

	counts := make(map[string]int, len(posts))
	for _, p := range posts {
		counts[p.Author]++
	}

	var top AuthorBlogs
	first := true
	for author, n := range counts {
		if first || n > top.Blogs {
			top = AuthorBlogs{Author: author, Blogs: n}
			first = false
		}
	}

	return top, nil
}

// MostLikes groups posts by author and returns the group with the largest
// cumulative like count. Same tie-break laxity as MostBlogs.
func MostLikes(posts []post.Post) (AuthorLikes, error) {
	if len(posts) == 0 {
		return AuthorLikes{}, ErrEmptyInput
	}

	sums := make(map[string]int, len(posts))
	for _, p := range posts {
		sums[p.Author] += p.Likes
	}

	var top AuthorLikes
	first := true
	for author, likes := range sums {
		if first || likes > top.Likes {
			top = AuthorLikes{Author: author, Likes: likes}
			first = false
		}
	}

	return top, nil
}
