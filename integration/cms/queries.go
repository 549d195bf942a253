package cms

// GROQ projections for the blog content. Image and reference fields are
// resolved server-side so the results are plain URLs and titles.

const postProjection = `{
  _id,
  title,
  "slug": slug.current,
  publishedAt,
  "coverImage": coverImage.asset->url,
  "category": category->{
    title,
    "slug": slug.current
  },
  "author": author->{
    name,
    bio,
    "imageUrl": image.asset->url
  },
  body[]{
    ...,
    _type == "image" => {
      ...,
      "asset": asset->{_id, url}
    }
  }
}`

const (
	queryPosts = `*[_type == "blogPost"] | order(publishedAt desc)` + postProjection

	queryPostBySlug = `*[_type == "blogPost" && slug.current == $slug][0]` + postProjection

	queryPostsByCategory = `*[_type == "blogPost" && category->slug.current == $category] | order(publishedAt desc)` + postProjection

	queryCategories = `*[_type == "category"]{
  _id,
  title,
  "slug": slug.current
}`
)
