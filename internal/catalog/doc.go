// Package catalog loads the two declarative data files a pottery map is
// built from: the companies file and the pottery collection.
//
// Both files are a single table of records keyed by name. TOML and YAML are
// accepted; the format is chosen from the file extension.
//
// # Companies file
//
//	["Alfred Meakin"]
//	factory = "Royal Albert Works"
//	location = { latitude = 53.0283, longitude = -2.1717 }
//	successor = "Myott-Meakin"
//	area = "Tunstall"
//	defunct = true
//
// Every key is optional. factory defaults to "Unknown" and location to none.
// Two companies at exactly the same coordinates are reported as a
// "duplicate_location" warning; both records are kept. Unknown keys are
// reported as "unknown_field" warnings.
//
// # Pottery collection
//
//	["Meakin Studio Plate"]
//	company = "Alfred Meakin"
//	material = "Earthenware"
//	type = "Dinner Plate"
//	design = "Topic"
//	category = "Plate"
//	era = "1960s"
//	notes = ["Backstamp dated 1964"]
//	photo_urls = ["https://example.org/topic.jpg"]
//
// company, material, type and design are required; a record missing one of
// them, or carrying a key not listed in [PotteryItem], fails the load. The
// record name is slugified into the item ID.
//
// # Ordering
//
// Records keep the order they have in the source file. Ordered maps from
// github.com/wk8/go-ordered-map carry that order through to the aggregate.
package catalog
