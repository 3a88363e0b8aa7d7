package service

import "strconv"

func jwtSubject(userID int64) string { return strconv.FormatInt(userID, 10) }

func parseJWTSubject(sub string) (int64, error) { return strconv.ParseInt(sub, 10, 64) }
