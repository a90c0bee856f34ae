package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/api"
	"github.com/studiowebux/postboard/internal/cli"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/notify"
	"github.com/studiowebux/postboard/internal/types"
)

// Output flags for board commands
var (
	flagOutput string
	flagQuery  string
)

// Flags for post writes
var (
	flagTitle   string
	flagContent string
	flagYes     bool
)

var errPostIDRequired = errors.New("post id required")

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatText, "Output format (text/json/yaml)")
	cmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the JSON result")
}

// newClient builds the API client for the resolved config
func newClient() *api.Client {
	transport := executor.New(appConfig.BaseURL, notify.Printer{W: os.Stderr},
		executor.WithTimeout(appConfig.RequestTimeout()),
		executor.WithLogger(logger),
	)
	return api.New(transport, appConfig.APIBasePath, appConfig.GUIDPath)
}

// newRunner builds a CLI runner after validating the output flags
func newRunner() (*cli.Runner, *api.Client, error) {
	if err := cli.ValidateFormat(flagOutput); err != nil {
		return nil, nil, err
	}
	client := newClient()
	runner := cli.New(client, cli.Options{
		Format: flagOutput,
		Query:  flagQuery,
		Color:  cli.IsInteractive(),
	})
	return runner, client, nil
}

// postID takes the id from args or, on a terminal, lets the user pick one
func postID(ctx context.Context, runner *cli.Runner, args []string) (types.PostID, error) {
	if len(args) > 0 {
		id := types.PostID(strings.TrimSpace(args[0]))
		if id.IsZero() {
			return "", errPostIDRequired
		}
		return id, nil
	}
	if !cli.IsInteractive() {
		return "", errPostIDRequired
	}
	return runner.SelectPost(ctx)
}

func newPostsCmd() *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "List, show, create, update and delete posts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			return runner.ListPosts(cmd.Context())
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a post with its comments",
		Long:  "Show a post with its comments. Without an id, pick the post interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			id, err := postID(cmd.Context(), runner, args)
			if err != nil {
				return err
			}
			return runner.ShowPost(cmd.Context(), id)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			return runner.CreatePost(cmd.Context(), types.PostInput{Title: flagTitle, Content: flagContent})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a post",
		Long:  "Update a post. Fields without a flag keep their current value.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, client, err := newRunner()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := postID(ctx, runner, args)
			if err != nil {
				return err
			}

			in := types.PostInput{Title: flagTitle, Content: flagContent}
			titleSet, contentSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("content")
			if !titleSet || !contentSet {
				current, err := client.GetPost(ctx, id)
				if err != nil {
					return cli.Reported(err)
				}
				if !titleSet {
					in.Title = current.Title
				}
				if !contentSet {
					in.Content = current.Content
				}
			}
			return runner.UpdatePost(ctx, id, in)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a post",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			id, err := postID(cmd.Context(), runner, args)
			if err != nil {
				return err
			}
			return runner.DeletePost(cmd.Context(), id, flagYes)
		},
	}

	for _, c := range []*cobra.Command{listCmd, getCmd, createCmd, updateCmd, deleteCmd} {
		addOutputFlags(c)
	}
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVarP(&flagTitle, "title", "t", "", "Post title")
		c.Flags().StringVar(&flagContent, "content", "", "Post content")
	}
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	postsCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	return postsCmd
}

func newCommentsCmd() *cobra.Command {
	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "List and add comments on a post",
	}

	listCmd := &cobra.Command{
		Use:   "list [post-id]",
		Short: "List the comments of a post",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			id, err := postID(cmd.Context(), runner, args)
			if err != nil {
				return err
			}
			return runner.ListComments(cmd.Context(), id)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <post-id> <content>",
		Short: "Add a comment to a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			id, err := postID(cmd.Context(), runner, args[:1])
			if err != nil {
				return err
			}
			return runner.AddComment(cmd.Context(), id, strings.Join(args[1:], " "))
		},
	}

	addOutputFlags(listCmd)
	addOutputFlags(addCmd)
	commentsCmd.AddCommand(listCmd, addCmd)
	return commentsCmd
}

func newGUIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guid",
		Short: "Generate a GUID on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner()
			if err != nil {
				return err
			}
			return runner.GenerateGUID(cmd.Context())
		},
	}
	addOutputFlags(cmd)
	return cmd
}
