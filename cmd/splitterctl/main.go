package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/client"
	"github.com/splitter-network/splitter-go/config"
	"github.com/splitter-network/splitter-go/didkey"
	"github.com/splitter-network/splitter-go/internal/logging"
	"github.com/splitter-network/splitter-go/session"
)

func printJSON(v any) error {
	marshalled, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(marshalled))
	return nil
}

type env struct {
	cfg      *config.Config
	client   *client.Client
	sessions session.Store
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.Debug)

	if cfg.SessionKey == "" {
		return nil, fmt.Errorf("SPLITTER_SESSION_KEY is not set; run `splitterctl keygen` and export the result")
	}
	sealKey, err := session.ParseKey(cfg.SessionKey)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
		return nil, err
	}
	sessions, err := session.NewFileStore(cfg.SessionPath, sealKey)
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.APIURL, sessions,
		client.WithLogger(*logger),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return &env{cfg: cfg, client: c, sessions: sessions}, nil
}

func keygen() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a session seal key for SPLITTER_SESSION_KEY.",
		Action: func(ctx *cli.Context) error {
			key, err := session.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Println(key)
			return nil
		},
	}
}

func health() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Probe the backend's liveness endpoint.",
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			resp, err := e.client.Health(ctx.Context)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func register() *cli.Command {
	var req api.RegisterRequest
	return &cli.Command{
		Name:  "register",
		Usage: "Create a new account with a fresh keypair and DID.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Usage:       "Username for the new account.",
				Destination: &req.Username,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "display-name",
				Usage:       "Display name for the new account.",
				Destination: &req.DisplayName,
			},
			&cli.StringFlag{
				Name:        "domain",
				Usage:       "Home instance domain.",
				Destination: &req.InstanceDomain,
				Value:       "localhost",
			},
			&cli.StringFlag{
				Name:        "bio",
				Usage:       "Profile bio.",
				Destination: &req.Bio,
			},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			keypair, err := didkey.GenerateKeypair()
			if err != nil {
				return err
			}
			did, err := didkey.NewDID(req.Username)
			if err != nil {
				return err
			}
			req.DID = did
			req.PublicKey = keypair.PublicKeyB64
			if req.DisplayName == "" {
				req.DisplayName = req.Username
			}

			// Persist the key before registering so the minted token merges
			// into the same session record.
			err = e.sessions.SaveSession(&session.Session{
				DID:                 did,
				PrivateKeyMultibase: didkey.EncodePrivateKey(keypair.PrivateKey),
			})
			if err != nil {
				return err
			}

			resp, err := e.client.Register(ctx.Context, &req)
			if err != nil {
				return err
			}
			return printJSON(resp.User)
		},
	}
}

func login() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate with the stored DID key via the challenge flow.",
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			sess, err := e.sessions.GetSession()
			if err != nil {
				return fmt.Errorf("no stored identity; register first: %w", err)
			}
			priv, err := didkey.DecodePrivateKey(sess.PrivateKeyMultibase)
			if err != nil {
				return err
			}
			resp, err := e.client.LoginWithKey(ctx.Context, sess.DID, priv)
			if err != nil {
				return err
			}
			return printJSON(resp.User)
		},
	}
}

func logout() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session.",
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return e.client.Logout()
		},
	}
}

func whoami() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the authenticated user's profile.",
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			user, err := e.client.GetCurrentUser(ctx.Context)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

func post() *cli.Command {
	var create api.PostCreate
	return &cli.Command{
		Name:  "post",
		Usage: "Publish a new post.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "content",
				Usage:       "Text content of the post.",
				Destination: &create.Content,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "visibility",
				Usage:       "Post visibility: public or followers.",
				Destination: &create.Visibility,
			},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			created, err := e.client.CreatePost(ctx.Context, &create)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
}

func feed() *cli.Command {
	var limit, offset int
	var public bool
	return &cli.Command{
		Name:  "feed",
		Usage: "Show the home feed (or the public feed with --public).",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Destination: &limit},
			&cli.IntFlag{Name: "offset", Value: 0, Destination: &offset},
			&cli.BoolFlag{Name: "public", Destination: &public},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			var posts []api.Post
			if public {
				posts, err = e.client.GetPublicFeed(ctx.Context, limit, offset)
			} else {
				posts, err = e.client.GetFeed(ctx.Context, limit, offset)
			}
			if err != nil {
				return err
			}
			return printJSON(posts)
		},
	}
}

func profile() *cli.Command {
	var userID string
	return &cli.Command{
		Name:  "profile",
		Usage: "Show a user's profile, follow stats and recent posts.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "user",
				Usage:       "User ID or DID.",
				Destination: &userID,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			overview, err := e.client.GetProfileOverview(ctx.Context, userID, 10)
			if err != nil {
				return err
			}
			return printJSON(overview)
		},
	}
}

func follow() *cli.Command {
	var userID string
	var unfollow bool
	return &cli.Command{
		Name:  "follow",
		Usage: "Follow (or with --undo, unfollow) a user.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "user",
				Usage:       "User ID or DID to follow.",
				Destination: &userID,
				Required:    true,
			},
			&cli.BoolFlag{Name: "undo", Destination: &unfollow},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if unfollow {
				resp, err := e.client.UnfollowUser(ctx.Context, userID)
				if err != nil {
					return err
				}
				return printJSON(resp)
			}
			resp, err := e.client.FollowUser(ctx.Context, userID)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func like() *cli.Command {
	var postID string
	var unlike bool
	return &cli.Command{
		Name:  "like",
		Usage: "Like (or with --undo, unlike) a post.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "post",
				Usage:       "Post ID.",
				Destination: &postID,
				Required:    true,
			},
			&cli.BoolFlag{Name: "undo", Destination: &unlike},
		},
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			var resp *api.MessageResponse
			if unlike {
				resp, err = e.client.UnlikePost(ctx.Context, postID)
			} else {
				resp, err = e.client.LikePost(ctx.Context, postID)
			}
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func bookmarks() *cli.Command {
	return &cli.Command{
		Name:  "bookmarks",
		Usage: "List the caller's bookmarked posts.",
		Action: func(ctx *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			posts, err := e.client.GetBookmarks(ctx.Context)
			if err != nil {
				return err
			}
			return printJSON(posts)
		},
	}
}

func main() {
	// A local .env is a convenience for development setups.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "splitterctl",
		Usage: "CLI for the Splitter federated social network API",
		CommandNotFound: func(ctx *cli.Context, s string) {
			fmt.Println("command not found: ", s)
		},
		Commands: []*cli.Command{
			keygen(),
			health(),
			register(),
			login(),
			logout(),
			whoami(),
			post(),
			feed(),
			profile(),
			follow(),
			like(),
			bookmarks(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
