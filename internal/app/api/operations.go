package api

// Fragments and operations sent to the journal API.

const userFragment = `
  fragment UserFragment on User {
    id
    username
    email
    jwt
  }
`

const experienceFragment = `
  fragment ExperienceFragment on Experience {
    id
    title
    intro
    insertedAt
  }
`

const fieldFragment = `
  fragment FieldFragment on Field {
    id
    name
    fieldType
    insertedAt
  }
`

const loginMutation = `
  mutation Login($user: LoginUserInput!) {
    login(user: $user) {
      ...UserFragment
    }
  }
` + userFragment

const signupMutation = `
  mutation Signup($user: CreateUserInput!) {
    createUser(user: $user) {
      ...UserFragment
    }
  }
` + userFragment

const experiencesMinimalQuery = `
  query ExperiencesMinimal($experience: GetExperiencesInput) {
    experiences(experience: $experience) {
      ...ExperienceFragment
    }
  }
` + experienceFragment

const createExperienceFieldsCollectionMutation = `
  mutation CreateExperienceFieldsCollection(
    $experienceFields: CreateExperienceFieldsCollectionInput!
  ) {
    createExperienceFieldsCollection(experienceFields: $experienceFields) {
      experience {
        ...ExperienceFragment
      }
      fields {
        ...FieldFragment
      }
    }
  }
` + experienceFragment + fieldFragment
