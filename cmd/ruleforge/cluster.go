package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ruleforge/internal/config"
	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

var (
	clusterRulesPath string
	clusterK         int
	clusterMethod    string
	clusterCentroid  string
	clusterLinkage   string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster a rule base by Jaccard similarity and print each cluster's centroid",
	RunE:  runCluster,
}

func init() {
	clusterCmd.Flags().StringVar(&clusterRulesPath, "rules", "", "path to a rule base file (required)")
	clusterCmd.Flags().IntVar(&clusterK, "k", 1, "number of clusters")
	clusterCmd.Flags().StringVar(&clusterMethod, "cluster-method", "agglomerative", "clustering backend: agglomerative, kmeans")
	clusterCmd.Flags().StringVar(&clusterCentroid, "centroid-method", "specialized", "centroid policy: general, specialized, weighted")
	clusterCmd.Flags().StringVar(&clusterLinkage, "linkage", "average", "agglomerative linkage: average, complete, single")
	clusterCmd.MarkFlagRequired("rules")
}

func runCluster(cmd *cobra.Command, args []string) error {
	rules, _, err := loadRuleBase(clusterRulesPath)
	if err != nil {
		return err
	}

	overrides := config.Overrides{}
	if cmd.Root().PersistentFlags().Changed("seed") {
		s := seed
		overrides.Seed = &s
	}
	cfg, err := config.Resolve(cfgFile, overrides)
	if err != nil {
		return err
	}

	var backend rulekit.ClusterBackend
	switch clusterMethod {
	case "agglomerative":
		backend = rulekit.NewAgglomerativeBackend(rulekit.Linkage(clusterLinkage))
	case "kmeans":
		backend = rulekit.NewKMeansBackend(5)
	default:
		return rulekit.UnknownClusterMethodError{Method: clusterMethod}
	}

	clusterer := rulekit.NewRuleClusterer(backend, rulekit.CentroidMethod(clusterCentroid), cfg.CentroidThreshold, cfg.Seed)
	clusters, err := clusterer.Cluster(rules, clusterK)
	if err != nil {
		return err
	}

	for _, c := range clusters {
		fmt.Fprintf(cmd.OutOrStdout(), "cluster %d (%d rules): centroid %s\n", c.ClusterID, c.Size, c.Centroid.String())
		for _, r := range c.Rules {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", r.String())
		}
	}
	return nil
}
