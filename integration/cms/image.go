package cms

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAssetRef is returned for malformed image asset references.
var ErrInvalidAssetRef = errors.New("invalid image asset reference")

// ImageURL resolves an image asset reference like
// "image-<hash>-<width>x<height>-<format>" into its CDN URL. References
// that are already URLs pass through unchanged.
func (c *Client) ImageURL(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetRef, ref)
	}
	hash, dimensions, format := parts[1], parts[2], parts[3]
	if hash == "" || dimensions == "" || format == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetRef, ref)
	}

	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		c.projectID, c.dataset, hash, dimensions, format), nil
}
