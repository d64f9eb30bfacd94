package mysql

// Note: DATE_FORMAT keeps the seed path string-based so rows go through the
// same timestamp validation as CSV rows.
const selectReviewsSQL = `
SELECT
  review_id,
  location,
  review_body,
  DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
FROM reviews
ORDER BY seq
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, review_body, location, created_at)\nVALUES "

// Rows without review_id never collide (NULLs are distinct in a UNIQUE key).
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  review_body = VALUES(review_body),\n" +
	"  location    = VALUES(location),\n" +
	"  created_at  = VALUES(created_at)\n"
