package export

import (
	"fmt"
	"sort"

	"github.com/tsawler/hueloc/cluster"
	"github.com/tsawler/hueloc/model"
)

// BuildCitationInfos turns clustered citation locations into export
// records. Each (citation key, cluster) pair becomes one record with id
// "<key>-<clusterIndex>" carrying the key and its resolved paper id.
//
// Keys with no entry in the resolution table have no external identity and
// are excluded; they are returned in unresolved so the caller can log
// them. Exclusion is never fatal. Output order is deterministic: keys
// sorted, then cluster indices ascending.
func BuildCitationInfos(clustered map[model.EntityID]cluster.Clusters, resolutions map[string]string) (infos []model.EntityUploadInfo, unresolved []string) {
	keys := make([]string, 0, len(clustered))
	for key := range clustered {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		paperID, ok := resolutions[key]
		if !ok {
			unresolved = append(unresolved, key)
			continue
		}

		clusters := clustered[key]
		indices := make([]int, 0, len(clusters))
		for idx := range clusters {
			indices = append(indices, idx)
		}
		sort.Ints(indices)

		for _, idx := range indices {
			infos = append(infos, model.EntityUploadInfo{
				ID:            fmt.Sprintf("%s-%d", key, idx),
				Type:          model.EntityCitation,
				BoundingBoxes: clusters[idx],
				Data: map[string]any{
					"key":      key,
					"paper_id": paperID,
				},
			})
		}
	}

	return infos, unresolved
}
