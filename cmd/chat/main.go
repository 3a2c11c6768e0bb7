// Package main 提供一个终端聊天客户端，逐行读取问题并打印对话记录。
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"lucai-go/pkg/chatclient"
)

type options struct {
	url     string
	ws      string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the LUCAI assistant through the web gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.url, "url", "http://localhost:3000", "gateway base URL")
	cmd.Flags().StringVar(&opts.ws, "ws", "", "websocket URL (e.g. ws://localhost:3000/ws/chat); overrides --url")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 70*time.Second, "per-question timeout")
	return cmd
}

func run(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var asker chatclient.Asker = chatclient.NewClient(opts.url, opts.timeout)
	if opts.ws != "" {
		wsClient, err := chatclient.DialWS(ctx, opts.ws)
		if err != nil {
			return err
		}
		defer wsClient.Close()
		asker = wsClient
	}

	session := chatclient.NewSession(asker)
	if err := chatclient.Render(out, session.Messages()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		askCtx, cancel := context.WithTimeout(ctx, opts.timeout)
		_, sent := session.Send(askCtx, scanner.Text())
		cancel()
		if !sent {
			continue
		}
		messages := session.Messages()
		if err := chatclient.Render(out, messages[len(messages)-1:]); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
