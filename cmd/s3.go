package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/ui"
)

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Browse S3 buckets",
	Long:  `List S3 buckets and browse their contents one prefix level at a time.`,
}

var s3BucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List S3 buckets",
	RunE:  runS3Buckets,
}

var s3LsCmd = &cobra.Command{
	Use:   "ls <bucket> [prefix]",
	Short: "List objects under a prefix",
	Long: `List the objects and "directories" directly under a prefix.

Examples:
  nbs s3 ls my-bucket
  nbs s3 ls my-bucket logs/2026/`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runS3List,
}

func init() {
	rootCmd.AddCommand(s3Cmd)
	s3Cmd.AddCommand(s3BucketsCmd)
	s3Cmd.AddCommand(s3LsCmd)
}

func runS3Buckets(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	buckets, err := client.ListBuckets()
	if err != nil {
		return err
	}

	if len(buckets) == 0 {
		fmt.Println("No buckets found")
		return nil
	}

	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{b.Name, created})
	}

	ui.PrintTable([]string{"Bucket", "Created"}, rows)
	return nil
}

func runS3List(cmd *cobra.Command, args []string) error {
	bucket := args[0]
	prefix := ""
	if len(args) == 2 {
		prefix = args[1]
	}

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	prefixes, objects, err := client.ListObjects(bucket, prefix)
	if err != nil {
		return err
	}

	if len(prefixes) == 0 && len(objects) == 0 {
		fmt.Printf("Nothing under s3://%s/%s\n", bucket, prefix)
		return nil
	}

	rows := make([][]string, 0, len(prefixes)+len(objects))
	for _, p := range prefixes {
		rows = append(rows, []string{p, "-", "-"})
	}
	for _, o := range objects {
		modified := "-"
		if !o.LastModified.IsZero() {
			modified = o.LastModified.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{o.Key, humanSize(o.Size), modified})
	}

	ui.PrintTable([]string{"Key", "Size", "Modified"}, rows)
	return nil
}

// humanSize formats a byte count with a binary unit suffix
func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
