package cache

import jsoniter "github.com/json-iterator/go"

// json é o codec dos payloads em cache; compatível com a stdlib.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
