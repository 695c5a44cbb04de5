package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/famgram/internal/service"
)

func (c *cli) postCmd() *cobra.Command {
	var imagePath, imageURL, caption string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}

			params := service.NewPost{Caption: caption, ImageURL: imageURL}
			if imagePath != "" {
				image, f, err := openImage(imagePath)
				if err != nil {
					return err
				}
				defer f.Close()
				params.Image = &image
			}

			post, err := c.social().CreatePost(cmd.Context(), actor, params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "post %s published\n", post.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "path of the image to upload")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "already hosted image URL")
	cmd.Flags().StringVar(&caption, "caption", "", "post caption")
	cmd.MarkFlagsMutuallyExclusive("image", "image-url")
	cmd.MarkFlagsOneRequired("image", "image-url")

	return cmd
}

func (c *cli) deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-post <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			if err := c.social().DeletePost(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "post %s deleted\n", args[0])
			return nil
		},
	}
}

func (c *cli) deleteCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-comment <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			if err := c.social().DeleteComment(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %s deleted\n", args[0])
			return nil
		},
	}
}

func (c *cli) tagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <post-id> <username>",
		Short: "Tag a user on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.actor(); err != nil {
				return err
			}
			if err := c.social().TagUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tagged @%s\n", strings.TrimPrefix(args[1], "@"))
			return nil
		},
	}
}

func (c *cli) untagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <post-id> <username>",
		Short: "Remove a user tag from a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.actor(); err != nil {
				return err
			}
			if err := c.social().UntagUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "untagged @%s\n", strings.TrimPrefix(args[1], "@"))
			return nil
		},
	}
}

func (c *cli) avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <file>",
		Short: "Change your profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			image, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			updated, err := c.social().ChangeAvatar(cmd.Context(), actor, image)
			if err != nil {
				return err
			}
			return c.afterProfileChange(cmd, updated.AvatarURL)
		},
	}
}

func (c *cli) bioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bio <text>",
		Short: "Change your bio",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor()
			if err != nil {
				return err
			}
			bio := strings.Join(args, " ")
			if _, err := c.social().UpdateProfile(cmd.Context(), actor, service.ProfileUpdate{Bio: &bio}); err != nil {
				return err
			}
			return c.afterProfileChange(cmd, "")
		},
	}
}

// afterProfileChange reloads the session so it reflects the saved profile.
func (c *cli) afterProfileChange(cmd *cobra.Command, avatarURL string) error {
	u, err := c.session().RefreshUser(cmd.Context())
	if err != nil {
		return err
	}
	if u == nil {
		return errors.New("session lost while updating profile")
	}
	if avatarURL != "" {
		u.AvatarURL = avatarURL
	}
	printUser(cmd.OutOrStdout(), u, time.Now().UnixMilli())
	return nil
}
